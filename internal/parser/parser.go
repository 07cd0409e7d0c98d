// Package parser reconstructs the hierarchical execution tree of an Apex
// debug log from its flat line sequence: dispatcher (line -> event), builder
// (event stream -> tree) and the post-build aggregation live behind one call.
package parser

import (
	"regexp"
	"strings"

	"apexlog/internal/source"
	"apexlog/internal/tree"
)

// Parse rebuilds the call tree of one debug log. It never fails: malformed
// or truncated input degrades into issues and parse errors on the returned
// trace, which is complete and read-only once this returns. Every call uses
// fresh state, concurrent parses of different files are safe.
func Parse(f *source.File) *tree.Trace {
	tr := tree.NewTrace()
	tr.Size = f.Size
	tr.DebugLevels = ParseDebugLevels(f.Content)

	b := &builder{
		cur: newCursor(&dispatcher{sc: source.NewScanner(f), tr: tr}),
		tr:  tr,
	}
	b.run()

	tree.Aggregate(tr)
	tr.MergedUsage = tr.Usage.Merge()
	return tr
}

// debugHeader matches the settings line anywhere in the raw text, e.g.
// "63.0 APEX_CODE,FINE;APEX_PROFILING,INFO".
var debugHeader = regexp.MustCompile(`(?m)^\d+\.\d+ ([A-Z_]+,[A-Z_]+(?:;[A-Z_]+,[A-Z_]+)*)`)

// ParseDebugLevels extracts the category/level pairs from the settings
// header. The scan runs over the whole text, independent of where line
// splitting starts; a log without a header yields nil.
func ParseDebugLevels(content []byte) []tree.DebugLevel {
	m := debugHeader.FindSubmatch(content)
	if m == nil {
		return nil
	}
	var out []tree.DebugLevel
	for _, pairText := range strings.Split(string(m[1]), ";") {
		category, level, ok := strings.Cut(pairText, ",")
		if !ok {
			continue
		}
		out = append(out, tree.DebugLevel{Category: category, Level: level})
	}
	return out
}
