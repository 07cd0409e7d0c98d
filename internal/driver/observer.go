package driver

import "time"

// PhaseStatus reports whether a file's analysis started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that analysis of one file has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes one file crossing a phase boundary.
type PhaseEvent struct {
	Path      string
	Status    PhaseStatus
	Elapsed   time.Duration
	FromCache bool
	Failed    bool
}

// PhaseObserver receives events emitted during AnalyzeDir. Callbacks run
// on worker goroutines, the receiver synchronizes itself.
type PhaseObserver func(PhaseEvent)

func emit(obs PhaseObserver, ev PhaseEvent) {
	if obs != nil {
		obs(ev)
	}
}
