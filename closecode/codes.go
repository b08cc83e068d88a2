package closecode

import "strconv"

// Type is the code of a websocket close frame sent by the gateway.
//
// https://discord.com/developers/docs/topics/opcodes-and-status-codes#gateway-gateway-close-event-codes
type Type uint16

// websocket codes
const (
	// Closed The connection was closed normally.
	Closed Type = 1000
	// ClientReconnecting The client is going away and intends to come back.
	ClientReconnecting Type = 1001
	// AbnormalClosure The connection dropped without a close frame. Never sent on the wire.
	AbnormalClosure Type = 1006
)

const (
	// UnknownError We're not sure what went wrong. Try reconnecting?
	UnknownError Type = 4000 + iota
	// UnknownOpCode You sent an invalid Gateway opcode or an invalid payload for an opcode. Don't do that!
	UnknownOpCode
	// DecodeError You sent an invalid payload to us. Don't do that!
	DecodeError
	// NotAuthenticated You sent us a payload prior to identifying
	NotAuthenticated
	// AuthenticationFailed The account token sent with your identify payload is incorrect
	AuthenticationFailed
	// AlreadyAuthenticated You sent more than one identify payload. Don't do that!
	AlreadyAuthenticated
	_ // 4006
	// InvalidSeq The sequence sent when resuming the session was invalid. Reconnect and start a new session
	InvalidSeq
	// RateLimited Woah nelly! You're sending payloads to us too quickly. Slow it down! You will be disconnected on receiving this
	RateLimited
	// SessionTimedOut Your session timed out. Reconnect and start a new one
	SessionTimedOut
	// InvalidShard You sent us an invalid shard when identifying
	InvalidShard
	// ShardingRequired The session would have handled too many guilds - you are required to shard your connection in order to connect
	ShardingRequired
	// InvalidAPIVersion You sent an invalid version for the gateway
	InvalidAPIVersion
	// InvalidIntents You sent an invalid intent for a Gateway Intent. You may have incorrectly calculated the bitwise value
	InvalidIntents
	// DisallowedIntents You sent a disallowed intent for a Gateway Intent. You may have tried to specify an intent that you have not enabled or are not whitelisted for
	DisallowedIntents
)

var names = map[Type]string{
	Closed:               "Closed",
	ClientReconnecting:   "ClientReconnecting",
	AbnormalClosure:      "AbnormalClosure",
	UnknownError:         "UnknownError",
	UnknownOpCode:        "UnknownOpCode",
	DecodeError:          "DecodeError",
	NotAuthenticated:     "NotAuthenticated",
	AuthenticationFailed: "AuthenticationFailed",
	AlreadyAuthenticated: "AlreadyAuthenticated",
	InvalidSeq:           "InvalidSeq",
	RateLimited:          "RateLimited",
	SessionTimedOut:      "SessionTimedOut",
	InvalidShard:         "InvalidShard",
	ShardingRequired:     "ShardingRequired",
	InvalidAPIVersion:    "InvalidAPIVersion",
	InvalidIntents:       "InvalidIntents",
	DisallowedIntents:    "DisallowedIntents",
}

// Lookup returns the symbolic name of code, if the code is known.
func Lookup(code Type) (string, bool) {
	name, ok := names[code]
	return name, ok
}

// Name returns the symbolic name of the code. Codes outside the catalog are
// reported as UnknownError.
func (code Type) Name() string {
	if name, ok := names[code]; ok {
		return name
	}
	return names[UnknownError]
}

func (code Type) String() string {
	if name, ok := names[code]; ok {
		return name
	}
	return "Type(" + strconv.Itoa(int(code)) + ")"
}
