package gatewaykit

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"go.uber.org/atomic"

	"github.com/discordpkg/gatewaykit/closecode"
	"github.com/discordpkg/gatewaykit/encoding"
	"github.com/discordpkg/gatewaykit/middleware"
	"github.com/discordpkg/gatewaykit/opcode"
)

// Shard is a single gateway websocket connection. Every frame it receives is
// dispatched through the shard's middleware chain as a *Context.
//
// The chain starts with middleware.Recover, so a panicking handler is reported
// to the error handler as a *middleware.PanicError and the event loop keeps
// running.
//
// Discord uses user-controlled guild sharding: each shard only receives the
// events of the guilds that DeriveShardID maps to it.
type Shard struct {
	middleware.Chain[*Context]

	url      string
	version  int
	encoding string
	logger   Logger
	onError  func(*Context, error)

	conn        net.Conn
	source      io.Reader
	writeMu     sync.Mutex
	textWriter  io.Writer
	closeWriter io.Writer
	closed      atomic.Bool
}

// NewShard prepares a shard for the gateway at baseURL, eg. "wss://gateway.discord.gg".
// The api version and encoding are appended to the url.
func NewShard(baseURL string, options ...Option) (*Shard, error) {
	shard := &Shard{
		version:  DefaultGatewayVersion,
		encoding: DefaultEncoding,
		logger:   &nopLogger{},
	}
	shard.onError = shard.logError
	shard.Use(middleware.Recover[*Context]())

	for i := range options {
		if err := options[i](shard); err != nil {
			return nil, err
		}
	}

	u, err := ValidateDialURL(GatewayURL(baseURL, shard.version, shard.encoding))
	if err != nil {
		return nil, err
	}
	shard.url = u

	return shard, nil
}

// URL returns the complete url the shard dials.
func (s *Shard) URL() string {
	return s.url
}

// Conn returns the underlying connection, or nil before Dial.
func (s *Shard) Conn() net.Conn {
	return s.conn
}

func (s *Shard) logError(ctx *Context, err error) {
	if ctx != nil && ctx.Payload != nil {
		s.logger.Error(fmt.Sprintf("dispatch of op %s (%s) failed: ", ctx.Payload.Op, ctx.Payload.EventName), err)
		return
	}
	s.logger.Error("dispatch failed: ", err)
}

type ioWriteFlusher struct {
	writer *wsutil.Writer
}

func (i *ioWriteFlusher) Write(p []byte) (n int, err error) {
	if n, err = i.writer.Write(p); err != nil {
		return n, err
	}
	return n, i.writer.Flush()
}

func (s *Shard) writer(op ws.OpCode) io.Writer {
	return &ioWriteFlusher{wsutil.NewWriter(s.conn, ws.StateClientSide, op)}
}

// Dial opens the websocket connection.
func (s *Shard) Dial(ctx context.Context) (net.Conn, error) {
	conn, reader, _, err := ws.Dial(ctx, s.url)
	if err != nil {
		return nil, &WebsocketError{Err: err}
	}
	s.logger.Debug("connected to ", s.url)

	s.conn = conn
	s.source = conn
	if reader != nil {
		if reader.Buffered() > 0 {
			// discord sent frames together with the handshake response
			s.source = io.MultiReader(reader, conn)
		} else {
			ws.PutReader(reader)
		}
	}

	s.closed.Store(false)
	s.textWriter = s.writer(ws.OpText)
	s.closeWriter = s.writer(ws.OpClose)
	return conn, nil
}

// Write sends a payload with the given op code.
func (s *Shard) Write(op opcode.Type, data RawMessage) error {
	if s.conn == nil {
		return ErrNotConnected
	}
	if s.closed.Load() {
		return net.ErrClosed
	}

	packet, err := encoding.Marshal(&Payload{Op: op, Data: data})
	if err != nil {
		return fmt.Errorf("unable to marshal payload. %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, err = s.textWriter.Write(packet)
	return err
}

// Close sends a normal close frame and closes the connection.
func (s *Shard) Close() error {
	if s.conn == nil {
		return ErrNotConnected
	}
	if !s.closed.CompareAndSwap(false, true) {
		return net.ErrClosed
	}

	s.logger.Info("shard sent close frame: ", closecode.Closed.Name())
	code := make([]byte, 2)
	binary.BigEndian.PutUint16(code, uint16(closecode.Closed))

	s.writeMu.Lock()
	_, err := s.closeWriter.Write(code)
	s.writeMu.Unlock()

	_ = s.conn.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return fmt.Errorf("failed to write close frame. %w", err)
	}
	return nil
}

// EventLoop reads frames until the connection closes or ctx is done. Payloads
// are dispatched as they arrive, and the loop always ends by dispatching a
// close context:
//
//   - discord sent a close frame: its code and reason, and a *CloseError is returned
//   - ctx is done or Close was called: closecode.Closed
//   - the connection dropped: closecode.AbnormalClosure with the read error as reason
func (s *Shard) EventLoop(ctx context.Context) error {
	if s.conn == nil {
		return ErrNotConnected
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.Close()
		case <-done:
		}
	}()

	controlHandler := wsutil.ControlFrameHandler(s.conn, ws.StateClientSide)
	rd := wsutil.Reader{
		Source:          s.source,
		State:           ws.StateClientSide,
		CheckUTF8:       true,
		SkipHeaderCheck: false,
		OnIntermediate:  controlHandler,
	}
	for {
		hdr, err := rd.NextFrame()
		if err != nil {
			return s.readFailed(ctx, err)
		}
		if hdr.OpCode.IsControl() {
			// discord does send close frames so these must be handled
			if err := controlHandler(hdr, &rd); err != nil {
				var errClose wsutil.ClosedError
				if !errors.As(err, &errClose) {
					return s.readFailed(ctx, err)
				}
				if ctxErr := ctx.Err(); ctxErr != nil {
					s.dispatchClose(closecode.Closed, "")
					return ctxErr
				}
				return s.closedByRemote(closecode.Type(errClose.Code), errClose.Reason)
			}
			continue
		}
		if hdr.OpCode&ws.OpText == 0 {
			// discord only uses text, even for heartbeats / ping/pong frames
			if err := rd.Discard(); err != nil {
				return s.readFailed(ctx, err)
			}
			continue
		}

		data, err := io.ReadAll(&rd)
		if err != nil {
			return s.readFailed(ctx, err)
		}

		payload := &Payload{}
		if err = encoding.Unmarshal(data, payload); err != nil {
			s.onError(nil, fmt.Errorf("failed to unmarshal payload. %w", err))
			continue
		}

		dispatchCtx := NewPayloadContext(s, payload)
		if err = s.Dispatch(dispatchCtx); err != nil {
			s.onError(dispatchCtx, err)
		}
	}
}

// readFailed ends the loop after a read error. A connection closed by ctx or
// Close dispatches closecode.Closed; anything else dropped the connection
// without a close frame and dispatches closecode.AbnormalClosure with err as
// the reason.
func (s *Shard) readFailed(ctx context.Context, err error) error {
	wasClosed := s.closed.Swap(true)
	_ = s.conn.Close()

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.dispatchClose(closecode.Closed, "")
		return ctxErr
	}
	if wasClosed {
		s.dispatchClose(closecode.Closed, "")
		return &WebsocketError{Err: net.ErrClosed}
	}

	s.logger.Warn("connection dropped: ", err)
	s.dispatchClose(closecode.AbnormalClosure, err.Error())

	errMsg := err.Error()
	closedConnection := strings.Contains(errMsg, "use of closed network connection")
	closedConnection = closedConnection || strings.Contains(errMsg, "use of closed connection")
	if closedConnection || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &WebsocketError{Err: net.ErrClosed}
	}
	return &WebsocketError{Err: err}
}

func (s *Shard) closedByRemote(code closecode.Type, reason string) error {
	s.closed.Store(true)
	_ = s.conn.Close()
	s.logger.Info(fmt.Sprintf("discord closed the connection: %d %s", uint16(code), code.Name()))

	s.dispatchClose(code, reason)
	return &CloseError{Code: code, Reason: reason}
}

// dispatchClose runs the close context through the chain. Every connection
// that EventLoop reads from ends with exactly one of these.
func (s *Shard) dispatchClose(code closecode.Type, reason string) {
	closeCtx := NewCloseContext(s, code, reason)
	if err := s.Dispatch(closeCtx); err != nil {
		s.onError(closeCtx, err)
	}
}
