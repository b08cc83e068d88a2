package snowflake

import (
	"time"
)

const (
	DefaultWorkerID  uint8 = 0
	DefaultProcessID uint8 = 1
)

// Components are the decoded fields of a snowflake. A nil Increment means the
// next value of a Counter is used.
type Components struct {
	Timestamp time.Time
	WorkerID  uint8
	ProcessID uint8
	Increment *uint16
}

// DefaultComponents returns the current time, DefaultWorkerID and
// DefaultProcessID, leaving the increment to a counter.
func DefaultComponents() Components {
	return Components{
		Timestamp: time.Now(),
		WorkerID:  DefaultWorkerID,
		ProcessID: DefaultProcessID,
	}
}

// New builds a snowflake from c. When c.Increment is nil the increment is taken
// from counter, or DefaultCounter if counter is nil. A zero Timestamp means now.
//
// Only the timestamp and increment are filled in: a zero WorkerID or ProcessID
// is encoded as 0. Start from DefaultComponents, or use Generate, to get
// DefaultProcessID.
func New(c Components, counter *Counter) Snowflake {
	timestamp := c.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	var increment uint16
	if c.Increment != nil {
		increment = *c.Increment
	} else {
		if counter == nil {
			counter = DefaultCounter
		}
		increment = counter.Next()
	}

	return Encode(timestamp, c.WorkerID, c.ProcessID, increment)
}

type generator struct {
	components Components
	counter    *Counter
}

type Option func(g *generator)

func WithTimestamp(t time.Time) Option {
	return func(g *generator) {
		g.components.Timestamp = t
	}
}

func WithWorkerID(id uint8) Option {
	return func(g *generator) {
		g.components.WorkerID = id
	}
}

func WithProcessID(id uint8) Option {
	return func(g *generator) {
		g.components.ProcessID = id
	}
}

func WithIncrement(increment uint16) Option {
	return func(g *generator) {
		g.components.Increment = &increment
	}
}

// WithCounter replaces DefaultCounter as the source of increments.
func WithCounter(counter *Counter) Option {
	return func(g *generator) {
		g.counter = counter
	}
}

// Generate creates a snowflake from DefaultComponents adjusted by options.
func Generate(options ...Option) Snowflake {
	g := &generator{
		components: DefaultComponents(),
		counter:    DefaultCounter,
	}
	for i := range options {
		options[i](g)
	}

	return New(g.components, g.counter)
}
