package testkit

import (
	"fmt"

	"apexlog/internal/diag"
	"apexlog/internal/tree"
)

// CheckTreeInvariants runs the structural guarantees every parsed trace
// upholds no matter how corrupt the input was:
// 1) parent/child wiring is consistent and the tree is acyclic
// 2) every reachable event carries a namespace
// 3) self time is never negative, and closed events keep exit-entry == total
// 4) findings are well-formed and parse errors are unique
// 5) the merged limit table equals the tracker's merge
func CheckTreeInvariants(tr *tree.Trace) error {
	if tr == nil {
		return fmt.Errorf("nil trace")
	}
	if tr.Issues == nil || tr.Usage == nil {
		return fmt.Errorf("trace collections not initialized")
	}

	// 1) wiring, 2) namespaces, 3) spans
	seen := make(map[*tree.Event]bool)
	stack := make([]*tree.Event, 0, len(tr.Children))
	for _, root := range tr.Children {
		if root == nil {
			return fmt.Errorf("nil root")
		}
		if root.Parent != nil {
			return fmt.Errorf("root %s has a parent", root.TypeName)
		}
		stack = append(stack, root)
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[e] {
			return fmt.Errorf("event %s reachable twice", e.TypeName)
		}
		seen[e] = true

		if e.Namespace == "" {
			return fmt.Errorf("event %s lost its namespace", e.TypeName)
		}
		if e.Duration.Self < 0 {
			return fmt.Errorf("negative self time %d on %s", e.Duration.Self, e.TypeName)
		}
		if e.ExitStamp != tree.NoStamp && e.Duration.Total != e.ExitStamp-e.Timestamp {
			return fmt.Errorf("span mismatch on %s: total %d, exit-entry %d",
				e.TypeName, e.Duration.Total, e.ExitStamp-e.Timestamp)
		}
		for _, c := range e.Children {
			if c == nil {
				return fmt.Errorf("nil child under %s", e.TypeName)
			}
			if c.Parent != e {
				return fmt.Errorf("child %s of %s has a foreign parent", c.TypeName, e.TypeName)
			}
			stack = append(stack, c)
		}
	}

	// 4) findings
	for _, is := range tr.Issues.Items() {
		if is.Summary == "" {
			return fmt.Errorf("issue without a summary at %d", is.Time)
		}
		if is.Kind > diag.KindSkip {
			return fmt.Errorf("unknown issue kind %d", is.Kind)
		}
	}
	seenErr := make(map[string]bool, len(tr.ParseErrors))
	for _, msg := range tr.ParseErrors {
		if msg == "" {
			return fmt.Errorf("empty parse error recorded")
		}
		if seenErr[msg] {
			return fmt.Errorf("duplicate parse error: %s", msg)
		}
		seenErr[msg] = true
	}

	// 5) merged usage
	if tr.MergedUsage != tr.Usage.Merge() {
		return fmt.Errorf("merged usage diverged from tracker merge")
	}
	return nil
}
