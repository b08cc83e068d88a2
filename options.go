package gatewaykit

import (
	"errors"
)

// Option for initializing a new shard. An option must be deterministic regardless
// of when or how many times it is executed.
type Option func(shard *Shard) error

func WithLogger(logger Logger) Option {
	return func(shard *Shard) error {
		if logger == nil {
			return errors.New("logger can not be nil")
		}
		shard.logger = logger
		return nil
	}
}

// WithGatewayVersion sets the "v" query parameter of the gateway url.
func WithGatewayVersion(version int) Option {
	return func(shard *Shard) error {
		shard.version = version
		return nil
	}
}

// WithEncoding sets the "encoding" query parameter of the gateway url. Only json
// can be decoded by the shard.
func WithEncoding(encoding string) Option {
	return func(shard *Shard) error {
		shard.encoding = encoding
		return nil
	}
}

// WithHandlers registers middleware at construction time, in order. They run
// after the Recover handler every shard starts with.
func WithHandlers(handlers ...Handler) Option {
	return func(shard *Shard) error {
		shard.Use(handlers...)
		return nil
	}
}

// WithErrorHandler is called whenever dispatching a frame fails. ctx is nil when
// the frame could not be decoded. The default handler logs the error.
func WithErrorHandler(handler func(ctx *Context, err error)) Option {
	return func(shard *Shard) error {
		if handler == nil {
			return errors.New("error handler can not be nil")
		}
		shard.onError = handler
		return nil
	}
}
