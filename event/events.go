package event

// Type is the name of a dispatched event, the "t" field of a payload.
//
// https://discord.com/developers/docs/topics/gateway#commands-and-events-gateway-events
type Type string

const (
	// Ready contains the initial state information
	Ready Type = "READY"
	// Resumed response to Resume
	Resumed Type = "RESUMED"

	// ApplicationCommandCreate new Slash Command was created
	ApplicationCommandCreate Type = "APPLICATION_COMMAND_CREATE"

	ChannelCreate Type = "CHANNEL_CREATE"
	ChannelDelete Type = "CHANNEL_DELETE"
	ChannelUpdate Type = "CHANNEL_UPDATE"

	GuildCreate Type = "GUILD_CREATE"
	GuildDelete Type = "GUILD_DELETE"
	GuildUpdate Type = "GUILD_UPDATE"

	GuildBanAdd    Type = "GUILD_BAN_ADD"
	GuildBanRemove Type = "GUILD_BAN_REMOVE"

	GuildEmojisUpdate Type = "GUILD_EMOJIS_UPDATE"

	GuildMemberAdd    Type = "GUILD_MEMBER_ADD"
	GuildMemberRemove Type = "GUILD_MEMBER_REMOVE"
	GuildMemberUpdate Type = "GUILD_MEMBER_UPDATE"
	// GuildMembersChunk response to Request Guild Members
	GuildMembersChunk Type = "GUILD_MEMBERS_CHUNK"

	GuildRoleCreate Type = "GUILD_ROLE_CREATE"
	GuildRoleDelete Type = "GUILD_ROLE_DELETE"
	GuildRoleUpdate Type = "GUILD_ROLE_UPDATE"

	// InteractionCreate user used an interaction, such as a Slash Command
	InteractionCreate Type = "INTERACTION_CREATE"

	MessageCreate     Type = "MESSAGE_CREATE"
	MessageDelete     Type = "MESSAGE_DELETE"
	MessageDeleteBulk Type = "MESSAGE_DELETE_BULK"
	MessageUpdate     Type = "MESSAGE_UPDATE"

	MessageReactionAdd         Type = "MESSAGE_REACTION_ADD"
	MessageReactionRemove      Type = "MESSAGE_REACTION_REMOVE"
	MessageReactionRemoveAll   Type = "MESSAGE_REACTION_REMOVE_ALL"
	MessageReactionRemoveEmoji Type = "MESSAGE_REACTION_REMOVE_EMOJI"

	// PresenceUpdate user was updated
	PresenceUpdate Type = "PRESENCE_UPDATE"
	// TypingStart user started typing in a channel
	TypingStart Type = "TYPING_START"
	// UserUpdate properties about the user changed
	UserUpdate Type = "USER_UPDATE"

	VoiceStateUpdate Type = "VOICE_STATE_UPDATE"
	// WebhooksUpdate guild channel webhook was created, update, or deleted
	WebhooksUpdate Type = "WEBHOOKS_UPDATE"
)

var all = []Type{
	Ready,
	Resumed,
	ApplicationCommandCreate,
	ChannelCreate,
	ChannelDelete,
	ChannelUpdate,
	GuildCreate,
	GuildDelete,
	GuildUpdate,
	GuildBanAdd,
	GuildBanRemove,
	GuildEmojisUpdate,
	GuildMemberAdd,
	GuildMemberRemove,
	GuildMemberUpdate,
	GuildMembersChunk,
	GuildRoleCreate,
	GuildRoleDelete,
	GuildRoleUpdate,
	InteractionCreate,
	MessageCreate,
	MessageDelete,
	MessageDeleteBulk,
	MessageUpdate,
	MessageReactionAdd,
	MessageReactionRemove,
	MessageReactionRemoveAll,
	MessageReactionRemoveEmoji,
	PresenceUpdate,
	TypingStart,
	UserUpdate,
	VoiceStateUpdate,
	WebhooksUpdate,
}

// All returns every known event name. The slice is a copy.
func All() []Type {
	events := make([]Type, len(all))
	copy(events, all)
	return events
}

// Known reports whether evt is part of the catalog. Discord adds events over
// time, so unknown names are still valid payloads.
func Known(evt Type) bool {
	for i := range all {
		if all[i] == evt {
			return true
		}
	}
	return false
}

func (evt Type) String() string {
	return string(evt)
}
