package script

import "strings"

// EventKind identifies which platform event a script invocation was built
// from. The named kinds other than Default and Message can have a stored
// script bound to them per guild.
type EventKind uint8

const (
	EventDefault EventKind = iota
	EventMessage
	EventChannelCreate
	EventChannelDelete
	EventChannelUpdate
	EventMemberJoin
	EventMemberLeave
	EventMemberUpdate
	EventRoleCreate
	EventRoleUpdate
	EventRoleDelete
	EventGuildUpdate
	EventVoiceUpdate
	EventReactionAdd
	EventReactionRemove
)

var kindNames = map[EventKind]string{
	EventDefault:        "Default",
	EventMessage:        "Message",
	EventChannelCreate:  "ChannelCreate",
	EventChannelDelete:  "ChannelDelete",
	EventChannelUpdate:  "ChannelUpdate",
	EventMemberJoin:     "MemberJoin",
	EventMemberLeave:    "MemberLeave",
	EventMemberUpdate:   "MemberUpdate",
	EventRoleCreate:     "RoleCreate",
	EventRoleUpdate:     "RoleUpdate",
	EventRoleDelete:     "RoleDelete",
	EventGuildUpdate:    "GuildUpdate",
	EventVoiceUpdate:    "VoiceUpdate",
	EventReactionAdd:    "ReactionAdd",
	EventReactionRemove: "ReactionRemove",
}

func (k EventKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// StorableKinds lists the event kinds a guild can bind a stored script to.
// Message triggers and the Default kind are excluded: messages are matched
// through the trigger table and Default only exists for direct execution.
var StorableKinds = []EventKind{
	EventChannelCreate,
	EventChannelDelete,
	EventChannelUpdate,
	EventMemberJoin,
	EventMemberLeave,
	EventMemberUpdate,
	EventRoleCreate,
	EventRoleUpdate,
	EventRoleDelete,
	EventGuildUpdate,
	EventVoiceUpdate,
	EventReactionAdd,
	EventReactionRemove,
}

// ParseEventKind resolves a user-supplied event name, case-insensitively,
// to a storable event kind.
func ParseEventKind(name string) (EventKind, bool) {
	lowered := strings.ToLower(name)
	for _, kind := range StorableKinds {
		if strings.ToLower(kind.String()) == lowered {
			return kind, true
		}
	}
	return EventDefault, false
}
