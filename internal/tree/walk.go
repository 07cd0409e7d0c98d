package tree

// Walk visits every event depth-first in source order, without recursion.
// Returning false from fn skips the node's subtree.
func Walk(roots []*Event, fn func(e *Event, depth int) bool) {
	type frame struct {
		e     *Event
		depth int
	}
	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{roots[i], 0})
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(top.e, top.depth) {
			continue
		}
		for i := len(top.e.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{top.e.Children[i], top.depth + 1})
		}
	}
}

// Count returns the number of events in the forest.
func Count(roots []*Event) int {
	n := 0
	Walk(roots, func(*Event, int) bool {
		n++
		return true
	})
	return n
}

// MaxDepth returns the deepest nesting level, zero for an empty forest.
func MaxDepth(roots []*Event) int {
	max := 0
	Walk(roots, func(_ *Event, depth int) bool {
		if depth+1 > max {
			max = depth + 1
		}
		return true
	})
	return max
}
