package parser

import "apexlog/internal/tree"

// cursor is a one-element-lookahead view of the dispatched event stream.
// peek never consumes; fetch consumes and advances. Behind it the dispatcher
// eats as many raw lines as needed to produce the next event.
type cursor struct {
	d      *dispatcher
	ahead  *tree.Event
	primed bool
}

func newCursor(d *dispatcher) *cursor {
	return &cursor{d: d}
}

// peek returns the next event without consuming it, nil at end of input.
func (c *cursor) peek() *tree.Event {
	if !c.primed {
		c.ahead = c.d.next()
		c.primed = true
	}
	return c.ahead
}

// fetch consumes and returns the next event, nil at end of input.
func (c *cursor) fetch() *tree.Event {
	e := c.peek()
	c.ahead = nil
	c.primed = false
	return e
}
