package diag

// Kind classifies an Issue.
type Kind uint8

const (
	// KindUnexpected marks structural anomalies: an entry that never got its
	// exit, an exit no open entry claims, a truncated subtree.
	KindUnexpected Kind = iota
	// KindError marks findings promoted from the log's own error records.
	KindError
	KindSkip // content the log reports as intentionally omitted
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindUnexpected:
		return "unexpected"
	case KindError:
		return "error"
	case KindSkip:
		return "skip"
	}
	return "unknown"
}

// Well-known summaries. Summary doubles as the dedup key, so these must stay
// stable: Replace relies on literal equality to upgrade one into another.
const (
	UnexpectedEnd  = "Unexpected-End"
	UnexpectedExit = "Unexpected-Exit"
	MaxSizeReached = "Max-Size-reached"
	SkippedLines   = "Skipped-Lines"
)

// Issue is a single finding, anchored to a timestamp in the log.
type Issue struct {
	Time        int64 // наносекунды от начала лога
	Summary     string
	Description string
	Kind        Kind
}
