package gatewaykit

import (
	"fmt"

	"github.com/discordpkg/gatewaykit/closecode"
	"github.com/discordpkg/gatewaykit/encoding"
	"github.com/discordpkg/gatewaykit/event"
	"github.com/discordpkg/gatewaykit/middleware"
	"github.com/discordpkg/gatewaykit/opcode"
)

type RawMessage = encoding.RawMessage

type ShardID uint

const (
	DefaultGatewayVersion = 8
	DefaultEncoding       = "json"
)

// Payload is a packet of data sent to or received from Discord. Payloads over
// 4096 bytes cause the gateway to close the connection with DecodeError.
type Payload struct {
	Op   opcode.Type `json:"op"`
	Data RawMessage  `json:"d"`

	// Seq and EventName are only set when Op is opcode.Dispatch
	Seq       int64      `json:"s,omitempty"`
	EventName event.Type `json:"t,omitempty"`
}

func (p Payload) String() string {
	return fmt.Sprintf("{\n\t\"op\":%d,\n\t\"t\":%q,\n\t\"data\": %s\n\t\"seq\":%d\n}", p.Op, p.EventName, string(p.Data), p.Seq)
}

// Close describes why the connection was closed.
type Close struct {
	Code   closecode.Type
	Name   string
	Reason string
}

// Context flows through the shard middleware for every received frame. Exactly
// one of Payload and Close is set.
type Context struct {
	Shard   *Shard
	Payload *Payload
	Close   *Close

	values map[string]interface{}
}

// IsClose reports whether the context describes a closed connection.
func (c *Context) IsClose() bool {
	return c.Close != nil
}

// Set stores a value for handlers further down the chain.
func (c *Context) Set(key string, value interface{}) {
	if c.values == nil {
		c.values = make(map[string]interface{})
	}
	c.values[key] = value
}

func (c *Context) Get(key string) (value interface{}, ok bool) {
	value, ok = c.values[key]
	return value, ok
}

// Handler is a middleware function registered on a Shard.
type Handler = middleware.Handler[*Context]

// Next resumes the shard middleware chain.
type Next = middleware.Next

// NewPayloadContext and NewCloseContext build the two shapes a Context can take.
func NewPayloadContext(shard *Shard, payload *Payload) *Context {
	return &Context{Shard: shard, Payload: payload}
}

func NewCloseContext(shard *Shard, code closecode.Type, reason string) *Context {
	return &Context{
		Shard: shard,
		Close: &Close{Code: code, Name: code.Name(), Reason: reason},
	}
}
