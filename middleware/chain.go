// Package middleware implements an onion style dispatch chain.
//
// Handlers registered with Use are called in registration order. Each handler
// receives the shared context value and a Next function; calling Next runs the
// remaining handlers and returns their outcome, so code placed before Next runs
// on the way down and code placed after it runs on the way back up:
//
//	chain := middleware.Chain[*Ctx]{}
//	chain.Use(func(ctx *Ctx, next middleware.Next) error {
//		start := time.Now()
//		err := next()
//		log.Println("took", time.Since(start))
//		return err
//	})
//	err := chain.Dispatch(&Ctx{})
//
// A handler that does not call Next stops the traversal. Calling Next more than
// once is reported as ErrDuplicateNext, both to the caller of Next and as the
// result of Dispatch.
package middleware

import (
	"errors"

	"go.uber.org/atomic"
)

var ErrDuplicateNext = errors.New("next invoked more than once for the same position")

// Next resumes the chain at the following position.
type Next func() error

// Handler processes ctx and decides if, and when, the rest of the chain runs.
type Handler[C any] func(ctx C, next Next) error

// Chain holds an ordered list of handlers. The zero value is ready for use.
//
// Use and Dispatch may be called concurrently: every Dispatch works on the
// handler list as it was when the dispatch started.
type Chain[C any] struct {
	handlers atomic.Pointer[[]Handler[C]]
}

// Use appends handlers to the end of the chain. Nil handlers are skipped.
func (c *Chain[C]) Use(handlers ...Handler[C]) {
	for {
		current := c.handlers.Load()

		var next []Handler[C]
		if current != nil {
			next = make([]Handler[C], len(*current), len(*current)+len(handlers))
			copy(next, *current)
		}
		for _, h := range handlers {
			if h != nil {
				next = append(next, h)
			}
		}

		if c.handlers.CompareAndSwap(current, &next) {
			return
		}
	}
}

// Len returns the number of registered handlers.
func (c *Chain[C]) Len() int {
	return len(c.snapshot())
}

func (c *Chain[C]) snapshot() []Handler[C] {
	if handlers := c.handlers.Load(); handlers != nil {
		return *handlers
	}
	return nil
}

// Dispatch drives ctx through the registered handlers and returns once the
// traversal has unwound, or the first error that surfaced.
func (c *Chain[C]) Dispatch(ctx C) error {
	return run(c.snapshot(), ctx)
}

func run[C any](handlers []Handler[C], ctx C) error {
	last := atomic.NewInt64(-1)
	duplicate := atomic.NewBool(false)

	var step func(i int) error
	step = func(i int) error {
		for {
			prev := last.Load()
			if int64(i) <= prev {
				duplicate.Store(true)
				return ErrDuplicateNext
			}
			if last.CompareAndSwap(prev, int64(i)) {
				break
			}
		}

		// past the end: terminal no-op
		if i >= len(handlers) {
			return nil
		}

		return handlers[i](ctx, func() error {
			return step(i + 1)
		})
	}

	// a handler may swallow the error of its second next call, the dispatch
	// still fails
	if err := step(0); err != nil || !duplicate.Load() {
		return err
	}
	return ErrDuplicateNext
}
