package snowflake

import (
	"go.uber.org/atomic"
)

// Counter hands out increments for newly generated snowflakes. It yields
// 0, 1, ..., MaxIncrement and then starts over at 0.
//
// A process normally owns a single Counter, DefaultCounter, shared by every
// snowflake generated without an explicit increment. Tests and embedders can
// create their own to get deterministic sequences.
type Counter struct {
	next atomic.Uint32
}

// DefaultCounter is used by Generate unless WithCounter is given.
var DefaultCounter = NewCounter()

func NewCounter() *Counter {
	return &Counter{}
}

// Next returns the current increment and advances the counter. Safe for
// concurrent use.
func (c *Counter) Next() uint16 {
	for {
		current := c.next.Load()
		following := (current + 1) & incrementMask
		if c.next.CompareAndSwap(current, following) {
			return uint16(current)
		}
	}
}

// Seed makes v the next value returned by Next.
func (c *Counter) Seed(v uint16) {
	c.next.Store(uint32(v) & incrementMask)
}

func (c *Counter) Reset() {
	c.Seed(0)
}
