package middleware

import (
	"fmt"
	"runtime/debug"
)

type PanicError struct {
	Value interface{}
	Stack []byte
}

var _ error = (*PanicError)(nil)

func (e *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Recover returns a handler that converts a panic in any handler after it into
// a *PanicError. Register it first to cover the whole chain.
func Recover[C any]() Handler[C] {
	return func(_ C, next Next) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r, Stack: debug.Stack()}
			}
		}()
		return next()
	}
}
