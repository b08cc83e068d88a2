package middleware

// Compose folds handlers into a single handler. The composed handlers run as a
// nested chain; when the innermost of them calls next, the outer chain resumes.
func Compose[C any](handlers ...Handler[C]) Handler[C] {
	inner := make([]Handler[C], 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			inner = append(inner, h)
		}
	}

	return func(ctx C, next Next) error {
		resume := func(ctx C, _ Next) error {
			return next()
		}
		return run(append(inner[:len(inner):len(inner)], resume), ctx)
	}
}
