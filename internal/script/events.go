package script

// Event is the tagged payload handed to the script engine. Each variant
// carries only the identifiers the engine is given access to; removed or
// pre-update entity data is deliberately never included.
type Event interface {
	Kind() EventKind
	// ChannelID returns the channel an invocation originated in, or ""
	// when the event has no originating channel.
	ChannelID() string
}

// DefaultEvent backs direct script execution (the execute command).
type DefaultEvent struct {
	Channel string
}

func (DefaultEvent) Kind() EventKind     { return EventDefault }
func (e DefaultEvent) ChannelID() string { return e.Channel }

// MessageEvent backs trigger matches. Trigger holds the matched span and
// Parameter the message text with that span removed.
type MessageEvent struct {
	Channel   string
	MessageID string
	UserID    string
	Parameter string
	Trigger   string
}

func (MessageEvent) Kind() EventKind     { return EventMessage }
func (e MessageEvent) ChannelID() string { return e.Channel }

// ChannelEvent backs ChannelCreate, ChannelDelete and ChannelUpdate.
type ChannelEvent struct {
	Event   EventKind
	Channel string
}

func (e ChannelEvent) Kind() EventKind { return e.Event }
func (e ChannelEvent) ChannelID() string {
	// A deleted channel is not a valid render target.
	if e.Event == EventChannelDelete {
		return ""
	}
	return e.Channel
}

// MemberEvent backs MemberJoin, MemberLeave and MemberUpdate.
type MemberEvent struct {
	Event  EventKind
	UserID string
}

func (e MemberEvent) Kind() EventKind { return e.Event }
func (MemberEvent) ChannelID() string { return "" }

// RoleEvent backs RoleCreate, RoleUpdate and RoleDelete.
type RoleEvent struct {
	Event  EventKind
	RoleID string
}

func (e RoleEvent) Kind() EventKind { return e.Event }
func (RoleEvent) ChannelID() string { return "" }

// GuildEvent backs GuildUpdate. The guild id lives on the execution
// context, so the payload itself is empty.
type GuildEvent struct{}

func (GuildEvent) Kind() EventKind   { return EventGuildUpdate }
func (GuildEvent) ChannelID() string { return "" }

// VoiceEvent backs VoiceUpdate. Channel may be empty when the user left
// voice entirely.
type VoiceEvent struct {
	UserID  string
	Channel string
}

func (VoiceEvent) Kind() EventKind   { return EventVoiceUpdate }
func (VoiceEvent) ChannelID() string { return "" }

// ReactionEvent backs ReactionAdd and ReactionRemove.
type ReactionEvent struct {
	Event     EventKind
	Channel   string
	MessageID string
	UserID    string
	Emoji     string
}

func (e ReactionEvent) Kind() EventKind   { return e.Event }
func (e ReactionEvent) ChannelID() string { return e.Channel }
