package tree

// Aggregate runs the two post-build fix-up passes: first packaged-code runs
// are coalesced, then counters and self time are rolled up bottom-up. Order
// matters, the rollup must see the final shape of the tree.
func Aggregate(t *Trace) {
	coalescePackaged(t)
	rollup(t.Children)
}

// coalescePackaged collapses each maximal run of consecutive sibling
// packaged-code events sharing a namespace into the run's first event.
// Managed packages log one opaque entry per statement, so a tight loop inside
// a package shows up as thousands of identical siblings; one span per run is
// what the reader actually wants.
func coalescePackaged(t *Trace) {
	t.Children = coalesceRun(t.Children)
	stack := append([]*Event(nil), t.Children...)
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if len(e.Children) == 0 {
			continue
		}
		e.Children = coalesceRun(e.Children)
		stack = append(stack, e.Children...)
	}
}

// coalesceRun rewrites one sibling list in place. A run survives as its first
// member; a differently-typed sibling or a namespace change ends the run.
func coalesceRun(children []*Event) []*Event {
	kept := children[:0]
	var run *Event
	for _, c := range children {
		if c.IsPackagedCode && run != nil && run.Namespace == c.Namespace {
			run.absorb(c)
			continue
		}
		if c.IsPackagedCode {
			run = c
		} else {
			run = nil
		}
		kept = append(kept, c)
	}
	return kept
}

// absorb folds a coalesced sibling into e: the span stretches to the
// sibling's end, counters and children move over.
func (e *Event) absorb(c *Event) {
	if end := c.End(); end > e.Timestamp {
		e.Close(end)
	}
	e.DMLCount.Self += c.DMLCount.Self
	e.DMLCount.Total += c.DMLCount.Total
	e.SOQLCount.Self += c.SOQLCount.Self
	e.SOQLCount.Total += c.SOQLCount.Total
	e.SOSLCount.Self += c.SOSLCount.Self
	e.SOSLCount.Total += c.SOSLCount.Total
	e.DMLRows.Self += c.DMLRows.Self
	e.DMLRows.Total += c.DMLRows.Total
	e.QueryRows.Self += c.QueryRows.Self
	e.QueryRows.Total += c.QueryRows.Total
	e.SOSLRows.Self += c.SOSLRows.Self
	e.SOSLRows.Total += c.SOSLRows.Total
	e.ThrownCount += c.ThrownCount
	for _, g := range c.Children {
		g.Parent = e
	}
	e.Children = append(e.Children, c.Children...)
	if c.IsTruncated {
		e.IsTruncated = true
	}
}

// rollup folds every child's totals into its parent and derives self time as
// total minus the children's totals. Processing goes level by level, deepest
// first: call stacks in real logs go hundreds of frames deep, so per-node
// recursion is out.
func rollup(roots []*Event) {
	levels := levelize(roots)
	for _, level := range levels {
		for _, e := range level {
			e.Duration.Self = e.Duration.Total
		}
	}
	for d := len(levels) - 1; d >= 1; d-- {
		for _, e := range levels[d] {
			p := e.Parent
			p.DMLCount.Total += e.DMLCount.Total
			p.SOQLCount.Total += e.SOQLCount.Total
			p.SOSLCount.Total += e.SOSLCount.Total
			p.DMLRows.Total += e.DMLRows.Total
			p.QueryRows.Total += e.QueryRows.Total
			p.SOSLRows.Total += e.SOSLRows.Total
			p.ThrownCount += e.ThrownCount
			p.Duration.Self -= e.Duration.Total
		}
	}
	// Corrupt spans can oversubtract; self time never goes negative in the
	// finished tree.
	for _, level := range levels {
		for _, e := range level {
			if e.Duration.Self < 0 {
				e.Duration.Self = 0
			}
		}
	}
}

// levelize groups the forest by depth, index 0 being the roots.
func levelize(roots []*Event) [][]*Event {
	var levels [][]*Event
	cur := roots
	for len(cur) > 0 {
		levels = append(levels, cur)
		var next []*Event
		for _, e := range cur {
			next = append(next, e.Children...)
		}
		cur = next
	}
	return levels
}
