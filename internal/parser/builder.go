package parser

import (
	"fmt"

	"apexlog/internal/diag"
	"apexlog/internal/tree"
)

// builder reconstructs the call tree from the event stream. It keeps a stack
// of currently open ancestors and one sticky discontinuity bit: set when an
// exception-like event shows up anywhere in the open subtree, cleared only by
// a clean exit match.
type builder struct {
	cur           *cursor
	tr            *tree.Trace
	stack         []*tree.Event
	discontinuity bool
	lastTime      int64 // таймстамп последнего съеденного события
}

// run drives the top level until the stream is exhausted. Force-closing on
// the way guarantees the stack is empty when this returns.
func (b *builder) run() {
	for {
		e := b.fetch()
		if e == nil {
			return
		}
		// A bare exit with nothing open is just as stray at the top level as
		// deeper down. Raise dedups, so a mid-transaction log costs one issue.
		if len(e.ExitTypes) == 0 && e.IsExitCandidate {
			b.tr.Issues.Raise(e.Timestamp, diag.UnexpectedExit,
				fmt.Sprintf("%s has no open entry to close", describe(e)), diag.KindUnexpected)
		}
		b.tr.AddRoot(e)
		if e.IsParent() {
			b.descend(e)
		}
	}
}

// fetch consumes the next event and remembers its timestamp; force-closed
// spans end at the last timestamp seen anywhere in the trace.
func (b *builder) fetch() *tree.Event {
	e := b.cur.fetch()
	if e != nil {
		b.lastTime = e.Timestamp
	}
	return e
}

// descend owns one open entry: e is already attached to its parent, children
// are attached here. Exactly one of the exit branches closes e before the
// stack frame pops.
func (b *builder) descend(e *tree.Event) {
	b.stack = append(b.stack, e)

	for {
		n := b.cur.peek()
		if n == nil {
			b.forceClose(e)
			break
		}

		if n.SignalsDiscontinuity {
			b.discontinuity = true
		}

		// Strict exit: e waits for a specific record kind and n is a bare
		// exit candidate, not an entry of its own.
		if !e.ClosesOnNextLine && len(n.ExitTypes) == 0 && n.IsExitCandidate {
			if b.close(e, n) {
				if e.OnEnd != nil {
					e.OnEnd(b.tr, n, b.stack)
				}
				break
			}
			// Exit belonged to nobody: fall through, n becomes a child.
		}

		// Implicit exit: e is closed by whatever real event comes next.
		if e.ClosesOnNextLine && (n.ClosesOnNextLine || n.IsExitCandidate || len(n.ExitTypes) > 0) {
			e.Close(n.Timestamp)
			if e.OnEnd != nil {
				e.OnEnd(b.tr, n, b.stack)
			}
			// n stays in the stream and becomes e's sibling.
			break
		}

		// Truncated unwind: content past the size limit is gone, nothing
		// below this point can be matched up anymore.
		if b.discontinuity && b.tr.Truncated() && n.Timestamp > b.tr.TruncationTime {
			b.forceClose(e)
			break
		}

		b.fetch()
		e.AddChild(n)
		if n.IsParent() {
			b.descend(n)
		}
	}

	b.stack = b.stack[:len(b.stack)-1]
}

// close tries to end e with exit record n.
//
// A good match consumes n and clears the discontinuity. With a discontinuity
// pending, or with an ancestor that can claim n, e is closed irregularly and
// n stays in the stream. Otherwise n is a stray exit: raise an issue and
// report failure so the caller treats it as an ordinary event.
func (b *builder) close(e *tree.Event, n *tree.Event) bool {
	if e.CanExit(n) {
		b.discontinuity = false
		b.fetch()
		e.Close(n.Timestamp)
		return true
	}

	if b.discontinuity {
		e.Close(n.Timestamp)
		return true
	}

	for i := len(b.stack) - 2; i >= 0; i-- {
		if b.stack[i].CanExit(n) {
			// e never got its own exit; let the ancestor claim n.
			e.Close(n.Timestamp)
			return true
		}
	}

	b.tr.Issues.Raise(n.Timestamp, diag.UnexpectedExit,
		fmt.Sprintf("%s has no open entry to close", describe(n)), diag.KindUnexpected)
	return false
}

// forceClose ends an entry the input abandoned: the span runs to the last
// seen timestamp and the reader learns why it is incomplete. On a log that
// hit its size limit the missing exit is already explained by the cut, so
// the specific finding replaces the generic one — never both.
func (b *builder) forceClose(e *tree.Event) {
	stamp := b.lastTime
	e.Close(stamp)
	e.IsTruncated = true
	b.tr.Issues.Raise(stamp, diag.UnexpectedEnd,
		fmt.Sprintf("%s has no matching exit before the log ends", describe(e)), diag.KindUnexpected)
	if b.tr.Truncated() {
		b.tr.Issues.Replace(diag.UnexpectedEnd, stamp, diag.MaxSizeReached,
			"content after the maximum log size was dropped", diag.KindSkip)
	}
}

func describe(e *tree.Event) string {
	if e.Text != "" {
		return e.TypeName + " " + e.Text
	}
	return e.TypeName
}
