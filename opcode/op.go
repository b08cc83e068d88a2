package opcode

import "strconv"

// Type is a gateway operation code, the "op" field of a payload.
//
// https://discord.com/developers/docs/topics/opcodes-and-status-codes#gateway-gateway-opcodes
type Type uint8

const (
	// Dispatch An event was dispatched.
	Dispatch Type = iota
	// Heartbeat Fired periodically by the client to keep the connection alive.
	Heartbeat
	// Identify Starts a new session during the initial handshake.
	Identify
	// StatusUpdate Update the client's presence.
	StatusUpdate
	// VoiceStateUpdate Used to join/leave or move between voice channels.
	VoiceStateUpdate
	_ // 5
	// Resume Resume a previous session that was disconnected.
	Resume
	// Reconnect You should attempt to reconnect and resume immediately.
	Reconnect
	// RequestGuildMembers Request information about offline guild members in a large guild.
	RequestGuildMembers
	// InvalidSession The session has been invalidated. You should reconnect and identify/resume accordingly.
	InvalidSession
	// Hello Sent immediately after connecting, contains the heartbeat_interval to use.
	Hello
	// HeartbeatACK Sent in response to receiving a heartbeat to acknowledge that it has been received.
	HeartbeatACK
)

// Invalid is never sent by discord.
const Invalid Type = 255

var names = map[Type]string{
	Dispatch:            "Dispatch",
	Heartbeat:           "Heartbeat",
	Identify:            "Identify",
	StatusUpdate:        "StatusUpdate",
	VoiceStateUpdate:    "VoiceStateUpdate",
	Resume:              "Resume",
	Reconnect:           "Reconnect",
	RequestGuildMembers: "RequestGuildMembers",
	InvalidSession:      "InvalidSession",
	Hello:               "Hello",
	HeartbeatACK:        "HeartbeatACK",
}

// String get string representation of the op code
// Type(8) => RequestGuildMembers
func (op Type) String() string {
	if name, ok := names[op]; ok {
		return name
	}
	return "Type(" + strconv.Itoa(int(op)) + ")"
}

// Known reports whether op is part of the gateway catalog.
func (op Type) Known() bool {
	_, ok := names[op]
	return ok
}

func All() []Type {
	return []Type{
		Dispatch,
		Heartbeat,
		Identify,
		StatusUpdate,
		VoiceStateUpdate,
		Resume,
		Reconnect,
		RequestGuildMembers,
		InvalidSession,
		Hello,
		HeartbeatACK,
	}
}
