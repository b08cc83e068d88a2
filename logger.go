package gatewaykit

// Logger for logging different situations. *logrus.Logger satisfies it.
type Logger interface {
	// Debug low level insight in system behavior to assist diagnostic.
	Debug(args ...interface{})

	// Info general information that might be interesting
	Info(args ...interface{})

	// Warn creeping technical debt, such as dependency updates will cause the system to not compile/break.
	Warn(args ...interface{})

	// Error recoverable events/issues that does not cause a system shutdown, but is also crucial and needs to be
	// dealt with quickly.
	Error(args ...interface{})
}

type nopLogger struct{}

func (n *nopLogger) Debug(_ ...interface{}) {}
func (n *nopLogger) Info(_ ...interface{})  {}
func (n *nopLogger) Warn(_ ...interface{})  {}
func (n *nopLogger) Error(_ ...interface{}) {}
