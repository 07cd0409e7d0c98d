package tree

import (
	"sort"

	"apexlog/internal/diag"
	"apexlog/internal/limits"
)

// DebugLevel is one category/verbosity pair from the log's settings header.
type DebugLevel struct {
	Category string
	Level    string
}

// Trace is the root aggregate of one parse: the top-level events plus
// everything collected along the way. The root itself is synthetic and has no
// span of its own.
type Trace struct {
	Children    []*Event
	Issues      *diag.Log
	ParseErrors []string
	Usage       *limits.Tracker
	// MergedUsage is the all-namespaces summary, filled after building.
	MergedUsage limits.Usage
	Size        int64
	// TruncationTime is the timestamp after which content was dropped by the
	// size limit, NoStamp when the log fit.
	TruncationTime int64
	DebugLevels    []DebugLevel

	namespaces map[string]struct{}
	seenErrors map[string]struct{}
}

func NewTrace() *Trace {
	return &Trace{
		Issues:         diag.NewLog(),
		Usage:          limits.NewTracker(),
		TruncationTime: NoStamp,
		namespaces:     make(map[string]struct{}),
		seenErrors:     make(map[string]struct{}),
	}
}

// AddRoot attaches a top-level event. Top-level code runs in the default
// namespace unless the event declared one.
func (t *Trace) AddRoot(e *Event) {
	if e.Namespace == "" {
		e.Namespace = DefaultNamespace
	}
	t.Children = append(t.Children, e)
}

// AddNamespace records a namespace seen anywhere in the log.
func (t *Trace) AddNamespace(ns string) {
	if ns == "" {
		return
	}
	t.namespaces[ns] = struct{}{}
}

// NamespaceList returns the recorded namespaces, sorted.
func (t *Trace) NamespaceList() []string {
	out := make([]string, 0, len(t.namespaces))
	for ns := range t.namespaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// HasNamespace reports whether ns was seen during the parse.
func (t *Trace) HasNamespace(ns string) bool {
	_, ok := t.namespaces[ns]
	return ok
}

// AddParseError records a non-fatal parse error. Repeats of the same message
// are dropped so one unknown record kind cannot flood the report.
func (t *Trace) AddParseError(msg string) {
	if _, dup := t.seenErrors[msg]; dup {
		return
	}
	t.seenErrors[msg] = struct{}{}
	t.ParseErrors = append(t.ParseErrors, msg)
}

// SetTruncationTime records when the log was cut short. The first report
// wins: later markers describe content already known to be missing.
func (t *Trace) SetTruncationTime(ts int64) {
	if t.TruncationTime == NoStamp {
		t.TruncationTime = ts
	}
}

// Truncated reports whether any content was dropped by the size limit.
func (t *Trace) Truncated() bool {
	return t.TruncationTime != NoStamp
}

// Span returns the first and last timestamps covered by the top-level
// events, zeros for an empty trace.
func (t *Trace) Span() (start, end int64) {
	if len(t.Children) == 0 {
		return 0, 0
	}
	start = t.Children[0].Timestamp
	for _, c := range t.Children {
		if e := c.End(); e > end {
			end = e
		}
	}
	return start, end
}

// TotalDuration is the wall time between the first and last top-level
// timestamps.
func (t *Trace) TotalDuration() int64 {
	start, end := t.Span()
	return end - start
}
