package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEventKindIsCaseInsensitive(t *testing.T) {
	cases := []struct {
		input string
		want  EventKind
	}{
		{"MemberJoin", EventMemberJoin},
		{"memberjoin", EventMemberJoin},
		{"MEMBERJOIN", EventMemberJoin},
		{"reactionadd", EventReactionAdd},
		{"ChannelDelete", EventChannelDelete},
		{"voiceupdate", EventVoiceUpdate},
	}
	for _, c := range cases {
		kind, ok := ParseEventKind(c.input)
		assert.True(t, ok, "input %q", c.input)
		assert.Equal(t, c.want, kind, "input %q", c.input)
	}
}

func TestParseEventKindRejectsUnknownAndUnstorable(t *testing.T) {
	for _, name := range []string{"", "nope", "Message", "Default"} {
		_, ok := ParseEventKind(name)
		assert.False(t, ok, "input %q", name)
	}
}

func TestKindNamesCoverStorableKinds(t *testing.T) {
	assert.Len(t, StorableKinds, 13)
	for _, kind := range StorableKinds {
		assert.NotEqual(t, "Unknown", kind.String())
	}
	assert.Equal(t, "Unknown", EventKind(200).String())
}

type namedKey string

func (k namedKey) Name() string { return string(k) }

func TestRegistryLookup(t *testing.T) {
	reg := NewRegistry(namedKey("if"), namedKey("get"), namedKey("embed"))

	assert.Equal(t, 3, reg.Len())
	assert.True(t, reg.Has("if"))
	assert.False(t, reg.Has("delete"))

	key, ok := reg.Get("embed")
	assert.True(t, ok)
	assert.Equal(t, "embed", key.Name())

	assert.Equal(t, []string{"embed", "get", "if"}, reg.Names())
}

func TestEventChannelResolution(t *testing.T) {
	assert.Equal(t, "c1", MessageEvent{Channel: "c1"}.ChannelID())
	assert.Equal(t, "c2", ChannelEvent{Event: EventChannelCreate, Channel: "c2"}.ChannelID())
	// A deleted channel cannot receive output.
	assert.Equal(t, "", ChannelEvent{Event: EventChannelDelete, Channel: "c3"}.ChannelID())
	assert.Equal(t, "", GuildEvent{}.ChannelID())
	assert.Equal(t, "", VoiceEvent{UserID: "u", Channel: "vc"}.ChannelID())
}
