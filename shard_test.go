package gatewaykit

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/discordpkg/gatewaykit/closecode"
	"github.com/discordpkg/gatewaykit/event"
	"github.com/discordpkg/gatewaykit/middleware"
	"github.com/discordpkg/gatewaykit/opcode"
)

// newGatewayServer starts a websocket server that runs script for every
// connection, standing in for discord.
func newGatewayServer(t *testing.T, script func(conn *websocket.Conn)) string {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("v") != "8" || query.Get("encoding") != "json" {
			http.Error(w, "unexpected gateway query", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		script(conn)
	}))
	t.Cleanup(srv.Close)

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func writeText(conn *websocket.Conn, messages ...string) error {
	for _, msg := range messages {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			return err
		}
	}
	return nil
}

func writeClose(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))

	// wait for the close reply
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

const (
	helloPayload   = `{"op":10,"d":{"heartbeat_interval":41250},"s":null,"t":null}`
	readyPayload   = `{"op":0,"d":{"session_id":"abc"},"s":1,"t":"READY"}`
	messagePayload = `{"op":0,"d":{"id":"175928847299117063","content":"hi"},"s":2,"t":"MESSAGE_CREATE"}`
)

func dialShard(t *testing.T, url string, options ...Option) *Shard {
	shard, err := NewShard(url, options...)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = shard.Dial(ctx)
	require.NoError(t, err)
	return shard
}

func TestShard_EventLoop(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		if err := writeText(conn, helloPayload, readyPayload, messagePayload); err != nil {
			return
		}
		writeClose(conn, int(closecode.AuthenticationFailed), "Authentication failed.")
	})

	var trace []string
	shard := dialShard(t, url)
	shard.Use(func(ctx *Context, next Next) error {
		if ctx.IsClose() {
			trace = append(trace, "outer:close:"+ctx.Close.Name)
		} else {
			trace = append(trace, "outer:"+ctx.Payload.Op.String())
		}
		err := next()
		trace = append(trace, "outer:up")
		return err
	})
	shard.Use(func(ctx *Context, next Next) error {
		if ctx.IsClose() {
			require.Nil(t, ctx.Payload)
			require.Equal(t, "Authentication failed.", ctx.Close.Reason)
			return next()
		}
		require.Nil(t, ctx.Close)
		require.Same(t, shard, ctx.Shard)
		if ctx.Payload.Op == opcode.Dispatch {
			trace = append(trace, "inner:"+string(ctx.Payload.EventName))
		}
		return next()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := shard.EventLoop(ctx)
	var closeErr *CloseError
	require.ErrorAs(t, err, &closeErr)
	require.Equal(t, closecode.AuthenticationFailed, closeErr.Code)

	require.Equal(t, []string{
		"outer:Hello", "outer:up",
		"outer:Dispatch", "inner:" + string(event.Ready), "outer:up",
		"outer:Dispatch", "inner:" + string(event.MessageCreate), "outer:up",
		"outer:close:AuthenticationFailed", "outer:up",
	}, trace)

	require.ErrorIs(t, shard.Write(opcode.Heartbeat, RawMessage("null")), net.ErrClosed)
}

func TestShard_UnknownCloseCode(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		writeClose(conn, 4999, "")
	})

	var closes []Close
	shard := dialShard(t, url, WithHandlers(func(ctx *Context, next Next) error {
		if ctx.IsClose() {
			closes = append(closes, *ctx.Close)
		}
		return next()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var closeErr *CloseError
	require.ErrorAs(t, shard.EventLoop(ctx), &closeErr)
	require.Equal(t, []Close{{Code: 4999, Name: "UnknownError"}}, closes)
}

func TestShard_WriteAndCancel(t *testing.T) {
	received := make(chan string, 1)
	closeCodes := make(chan int, 1)
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		if err := writeText(conn, helloPayload); err != nil {
			return
		}
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				var closeErr *websocket.CloseError
				if errors.As(err, &closeErr) {
					closeCodes <- closeErr.Code
				}
				return
			}
			received <- string(data)
		}
	})

	var closes []Close
	shard := dialShard(t, url, WithHandlers(func(ctx *Context, next Next) error {
		if ctx.IsClose() {
			closes = append(closes, *ctx.Close)
			return next()
		}
		if ctx.Payload.Op == opcode.Hello {
			if err := ctx.Shard.Write(opcode.Heartbeat, RawMessage("null")); err != nil {
				return err
			}
		}
		return next()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	loopErr := make(chan error, 1)
	go func() {
		loopErr <- shard.EventLoop(ctx)
	}()

	select {
	case msg := <-received:
		require.JSONEq(t, `{"op":1,"d":null}`, msg)
	case <-time.After(5 * time.Second):
		t.Fatal("heartbeat was never received")
	}

	cancel()
	select {
	case err := <-loopErr:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("event loop did not stop")
	}
	require.Equal(t, []Close{{Code: closecode.Closed, Name: "Closed"}}, closes)

	select {
	case code := <-closeCodes:
		require.Equal(t, websocket.CloseNormalClosure, code)
	case <-time.After(5 * time.Second):
		t.Fatal("close frame was never received")
	}
}

func TestShard_DispatchErrors(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		if err := writeText(conn, "not json", readyPayload, messagePayload); err != nil {
			return
		}
		writeClose(conn, int(closecode.Closed), "")
	})

	handlerErr := errors.New("handler failed")

	type reported struct {
		ctx *Context
		err error
	}
	var reports []reported

	var dispatched []event.Type
	shard := dialShard(t, url,
		WithErrorHandler(func(ctx *Context, err error) {
			reports = append(reports, reported{ctx, err})
		}),
		WithHandlers(
			func(ctx *Context, next Next) error {
				if ctx.IsClose() {
					return next()
				}
				dispatched = append(dispatched, ctx.Payload.EventName)
				switch ctx.Payload.EventName {
				case event.Ready:
					return handlerErr
				case event.MessageCreate:
					panic("unexpected message")
				}
				return next()
			},
		),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var closeErr *CloseError
	require.ErrorAs(t, shard.EventLoop(ctx), &closeErr)
	require.Equal(t, closecode.Closed, closeErr.Code)

	// the loop keeps going after failures, panics included
	require.Equal(t, []event.Type{event.Ready, event.MessageCreate}, dispatched)
	require.Len(t, reports, 3)

	require.Nil(t, reports[0].ctx, "undecodable frames have no context")
	require.Error(t, reports[0].err)

	require.Equal(t, int64(1), reports[1].ctx.Payload.Seq)
	require.True(t, reports[1].err == handlerErr)

	var panicErr *middleware.PanicError
	require.ErrorAs(t, reports[2].err, &panicErr)
	require.Equal(t, "unexpected message", panicErr.Value)
}

func TestShard_CloseTwice(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	shard := dialShard(t, url)
	require.NoError(t, shard.Close())
	require.ErrorIs(t, shard.Close(), net.ErrClosed)
}

func TestShard_ConnectionDropped(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		if err := writeText(conn, helloPayload); err != nil {
			return
		}
		// no close frame
		_ = conn.UnderlyingConn().Close()
	})

	var ops []opcode.Type
	var closes []Close
	shard := dialShard(t, url, WithHandlers(func(ctx *Context, next Next) error {
		if ctx.IsClose() {
			closes = append(closes, *ctx.Close)
		} else {
			ops = append(ops, ctx.Payload.Op)
		}
		return next()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := shard.EventLoop(ctx)
	var wsErr *WebsocketError
	require.ErrorAs(t, err, &wsErr)
	require.NoError(t, ctx.Err())

	require.Equal(t, []opcode.Type{opcode.Hello}, ops)
	require.Len(t, closes, 1)
	require.Equal(t, closecode.AbnormalClosure, closes[0].Code)
	require.Equal(t, "AbnormalClosure", closes[0].Name)
	require.NotEmpty(t, closes[0].Reason)

	require.ErrorIs(t, shard.Write(opcode.Heartbeat, RawMessage("null")), net.ErrClosed)
}

func TestShard_CloseFromHandler(t *testing.T) {
	url := newGatewayServer(t, func(conn *websocket.Conn) {
		if err := writeText(conn, helloPayload); err != nil {
			return
		}
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	var closes []Close
	shard := dialShard(t, url, WithHandlers(func(ctx *Context, next Next) error {
		if ctx.IsClose() {
			closes = append(closes, *ctx.Close)
			return next()
		}
		if err := next(); err != nil {
			return err
		}
		return ctx.Shard.Close()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.ErrorIs(t, shard.EventLoop(ctx), net.ErrClosed)
	require.Equal(t, []Close{{Code: closecode.Closed, Name: "Closed"}}, closes)
}
