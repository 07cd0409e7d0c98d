package parser

import (
	"regexp"
	"strings"

	"apexlog/internal/diag"
	"apexlog/internal/record"
	"apexlog/internal/source"
	"apexlog/internal/tree"
)

const fieldDelimiter = "|"

var (
	// plausibleType matches names that look like record kinds even when the
	// registry does not know them.
	plausibleType = regexp.MustCompile(`^[A-Z_]+$`)
	// settingsLine matches the debug-settings header, e.g.
	// "63.0 APEX_CODE,FINE;APEX_PROFILING,INFO;...".
	settingsLine = regexp.MustCompile(`^\d+\.\d+ [A-Z_]+,[A-Z_]+`)
)

const (
	skippedMarker = "*** Skipped"
	maxSizeMarker = "MAXIMUM DEBUG LOG SIZE REACHED"
)

// dispatcher turns raw lines into events: registry lookup, continuation
// text, structured skip/size markers, parse errors. prev is the most
// recently dispatched event, whether or not the builder attached it yet.
type dispatcher struct {
	sc   *source.Scanner
	tr   *tree.Trace
	prev *tree.Event
}

// next consumes lines until one produces an event; nil means end of input.
// The pending after-hook of the final event fires exactly once at the end.
func (d *dispatcher) next() *tree.Event {
	for {
		line, ok := d.sc.Next()
		if !ok {
			if d.prev != nil && d.prev.OnAfter != nil {
				d.prev.OnAfter(d.tr, nil)
			}
			d.prev = nil
			return nil
		}
		if e := d.dispatch(line); e != nil {
			return e
		}
	}
}

// dispatch classifies one logical line.
func (d *dispatcher) dispatch(line string) *tree.Event {
	fields := strings.Split(line, fieldDelimiter)
	var name string
	if len(fields) >= 2 {
		name = fields[1]
	}

	if meta, ok := record.Describe(name); ok {
		e := record.Instantiate(meta, name, fields)
		e.RawLine = line
		if d.prev != nil && d.prev.OnAfter != nil {
			d.prev.OnAfter(d.tr, e)
		}
		d.tr.AddNamespace(e.Namespace)
		d.prev = e
		return e
	}

	if name != "" && plausibleType.MatchString(name) {
		d.tr.AddParseError("unsupported log event: " + name)
		return nil
	}

	if d.prev != nil && d.prev.AcceptsText {
		d.prev.Text += "\n" + line
		return nil
	}

	if strings.HasPrefix(line, skippedMarker) {
		d.tr.Issues.Raise(d.prevTime(), diag.SkippedLines, strings.TrimSpace(line), diag.KindSkip)
		return nil
	}

	if strings.Contains(line, maxSizeMarker) {
		d.tr.Issues.Raise(d.prevTime(), diag.MaxSizeReached, strings.TrimSpace(line), diag.KindSkip)
		d.tr.SetTruncationTime(d.prevTime())
		return nil
	}

	if settingsLine.MatchString(line) {
		return nil
	}

	d.tr.AddParseError("invalid log line: " + clip(line, 80))
	return nil
}

// prevTime is the best timestamp to pin a marker issue to.
func (d *dispatcher) prevTime() int64 {
	if d.prev != nil {
		return d.prev.Timestamp
	}
	return 0
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
