package diag

import "sort"

// Log accumulates Issues for one parse invocation.
// Not safe for concurrent use; every parse owns a fresh instance.
type Log struct {
	items []Issue
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{items: make([]Issue, 0, 4)}
}

// Raise records an issue unless one with the same summary already exists.
// Items stay sorted ascending by time.
func (l *Log) Raise(t int64, summary, description string, kind Kind) {
	for i := range l.items {
		if l.items[i].Summary == summary {
			return
		}
	}
	l.items = append(l.items, Issue{
		Time:        t,
		Summary:     summary,
		Description: description,
		Kind:        kind,
	})
	sort.SliceStable(l.items, func(i, j int) bool {
		return l.items[i].Time < l.items[j].Time
	})
}

// Replace removes the issue whose summary equals drop, if present, then
// raises the replacement. Information is only ever substituted, never
// silently discarded: callers upgrade a generic finding into a specific one
// (Unexpected-End -> Max-Size-reached).
func (l *Log) Replace(drop string, t int64, summary, description string, kind Kind) {
	for i := range l.items {
		if l.items[i].Summary == drop {
			l.items = append(l.items[:i], l.items[i+1:]...)
			break
		}
	}
	l.Raise(t, summary, description, kind)
}

// Len возвращает количество накопленных находок.
func (l *Log) Len() int {
	return len(l.items)
}

// Items returns a read-only slice of issues, sorted by time.
// Не модифицируйте возвращаемый срез: он указывает на внутренний массив.
func (l *Log) Items() []Issue {
	return l.items
}

// Has reports whether an issue with the given summary exists.
func (l *Log) Has(summary string) bool {
	for i := range l.items {
		if l.items[i].Summary == summary {
			return true
		}
	}
	return false
}
