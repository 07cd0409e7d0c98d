// Package tree holds the reconstructed call-tree: Event nodes, the Trace root
// aggregate, and the bottom-up fix-up passes that run once building is done.
//
// Ownership runs strictly parent -> children. The Parent pointer exists for
// upward navigation only and is never released through.
package tree

// Sentinels for Event.LineRef.
const (
	NoLine       = -1
	ExternalLine = -2
)

// NoStamp marks a span whose exit has not been observed.
const NoStamp int64 = -1

// DefaultNamespace is assumed for code that does not declare a package
// namespace of its own.
const DefaultNamespace = "default"

// Pair is a self/total counter. Self is what the node itself contributed,
// Total additionally includes every descendant.
type Pair struct {
	Self  int64
	Total int64
}

// Event is one node of the call-tree. Events are created by the record
// factory, attached by the builder and mutated in place by the aggregation
// passes; consumers treat them as read-only.
type Event struct {
	TypeName  string
	Text      string
	RawLine   string
	Timestamp int64 // наносекунды от старта лога
	ExitStamp int64 // NoStamp, пока выход не встречен
	LineRef   int
	Namespace string

	// Structural behaviour copied from the registry entry.
	ExitTypes            []string
	ClosesOnNextLine     bool
	IsExitCandidate      bool
	SignalsDiscontinuity bool
	AcceptsText          bool
	HasLineRef           bool
	IsPackagedCode       bool

	Parent   *Event // не владеющая ссылка
	Children []*Event

	IsTruncated bool

	DMLCount    Pair
	SOQLCount   Pair
	SOSLCount   Pair
	DMLRows     Pair
	QueryRows   Pair
	SOSLRows    Pair
	ThrownCount int64
	Duration    Pair

	// OnEnd fires when the builder closes this event, with the closing event
	// and the currently open ancestor stack. Used for entry/exit pairing such
	// as copying row counts from an exit record.
	OnEnd func(t *Trace, end *Event, stack []*Event)
	// OnAfter fires when the next event is dispatched, before it is attached.
	// Used by records that finish parsing once their continuation text is
	// complete.
	OnAfter func(t *Trace, next *Event)
}

// IsParent reports whether the event opens a scope that can own children.
// Implicitly-closed kinds count: they own a (possibly empty) scope until the
// very next line.
func (e *Event) IsParent() bool {
	return len(e.ExitTypes) > 0 || e.ClosesOnNextLine
}

// End returns the best known end of the span: the exit stamp once the event
// was closed, otherwise the entry timestamp.
func (e *Event) End() int64 {
	if e.ExitStamp != NoStamp {
		return e.ExitStamp
	}
	return e.Timestamp
}

// Close records the end of the span and seeds the duration counters. Self
// time is provisional until the rollup pass subtracts the children.
func (e *Event) Close(stamp int64) {
	e.ExitStamp = stamp
	e.Duration.Total = stamp - e.Timestamp
	e.Duration.Self = e.Duration.Total
}

// AddChild appends c in source order, wiring the parent pointer and namespace
// inheritance: a child without an own namespace takes the nearest ancestor's.
func (e *Event) AddChild(c *Event) {
	c.Parent = e
	if c.Namespace == "" {
		c.Namespace = e.Namespace
	}
	e.Children = append(e.Children, c)
}

// CanExit reports whether end is a legitimate exit for this event: its type
// is one of the registered exit types and the line references agree, with an
// unknown reference on either side acting as a wildcard.
func (e *Event) CanExit(end *Event) bool {
	found := false
	for _, t := range e.ExitTypes {
		if t == end.TypeName {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if e.LineRef == NoLine || end.LineRef == NoLine {
		return true
	}
	return e.LineRef == end.LineRef
}
