package gatewaykit

import (
	"errors"
	"fmt"

	"github.com/discordpkg/gatewaykit/closecode"
)

var ErrNotConnected = errors.New("shard is not connected - call Dial first")

// CloseError is returned by EventLoop when discord closed the connection.
type CloseError struct {
	Code   closecode.Type
	Reason string
}

var _ error = (*CloseError)(nil)

func (err *CloseError) Error() string {
	return fmt.Sprintf("websocket closed: %d %s %s", uint16(err.Code), err.Code.Name(), err.Reason)
}

type WebsocketError struct {
	Err error
}

var _ error = (*WebsocketError)(nil)

func (e *WebsocketError) Error() string {
	return fmt.Errorf("websocket logic failed: %w", e.Err).Error()
}

func (e *WebsocketError) Unwrap() error {
	return e.Err
}
