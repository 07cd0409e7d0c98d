package logfmt

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"apexlog/internal/tree"
)

// frameName is a folded-stack frame. Semicolons separate frames, so
// they may not appear inside one.
func frameName(e *tree.Event) string {
	name := e.TypeName
	if e.Text != "" && e.Text != e.TypeName {
		name = label(e)
	}
	return strings.ReplaceAll(name, ";", ",")
}

// Folded writes the trace as folded stacks: one line per unique call
// path, weighted by self time in nanoseconds. The output feeds
// directly into flamegraph.pl or speedscope.
func Folded(w io.Writer, tr *tree.Trace) error {
	agg := map[string]int64{}
	var stack []string
	tree.Walk(tr.Children, func(e *tree.Event, depth int) bool {
		stack = append(stack[:depth], frameName(e))
		if self := e.Duration.Self; self > 0 {
			agg[strings.Join(stack, ";")] += self
		}
		return true
	})
	keys := make([]string, 0, len(agg))
	for k := range agg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s %d\n", k, agg[k]); err != nil {
			return err
		}
	}
	return nil
}
