package renderer

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamski234/yttrium-bot/internal/script"
)

type fakeSender struct {
	sentMessages  []string
	sentEmbeds    []*discordgo.MessageEmbed
	reactions     []string
	deleted       []string
	nextMessageID int

	failMessage   bool
	failReactions map[string]bool
}

func (f *fakeSender) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.failMessage {
		return nil, errors.New("send failed")
	}
	f.sentMessages = append(f.sentMessages, content)
	f.nextMessageID++
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", f.nextMessageID), ChannelID: channelID}, nil
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sentEmbeds = append(f.sentEmbeds, embed)
	f.nextMessageID++
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", f.nextMessageID), ChannelID: channelID}, nil
}

func (f *fakeSender) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	if f.failReactions[emojiID] {
		return errors.New("reaction failed")
	}
	f.reactions = append(f.reactions, messageID+":"+emojiID)
	return nil
}

func (f *fakeSender) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

// newTestRenderer runs scheduled deletions immediately.
func newTestRenderer(sender Sender) *Renderer {
	r := New(sender)
	r.schedule = func(_ time.Duration, fn func()) { fn() }
	return r
}

func TestRenderPlainMessage(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	report := r.Render(&script.Result{Message: "hello"}, "channel-1")

	require.Len(t, sender.sentMessages, 1)
	assert.Equal(t, "hello", sender.sentMessages[0])
	assert.Equal(t, "msg-1", report.LastMessageID)
	assert.Empty(t, report.Failed())
}

func TestRenderEmptyResultIsSilent(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	report := r.Render(&script.Result{}, "channel-1")

	assert.Empty(t, sender.sentMessages)
	assert.Empty(t, sender.sentEmbeds)
	assert.Empty(t, report.LastMessageID)
}

func TestRenderWarningsOnly(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	r.Render(&script.Result{Warnings: []script.Warning{script.WarningUnclosedKeys}}, "channel-1")

	require.Len(t, sender.sentMessages, 1)
	assert.Equal(t, "There are unclosed keys", sender.sentMessages[0])
}

func TestRenderWarningsPrefixMessage(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	r.Render(&script.Result{
		Message:  "body",
		Warnings: []script.Warning{script.WarningUnclosedKeys},
	}, "channel-1")

	require.Len(t, sender.sentMessages, 1)
	assert.Equal(t, "There are unclosed keys\nbody", sender.sentMessages[0])
}

func TestRenderTargetOverride(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	report := r.Render(&script.Result{Message: "hello", Target: "channel-2"}, "channel-1")

	assert.Equal(t, "channel-2", report.ChannelID)
}

func TestRenderNoChannelSkips(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	report := r.Render(&script.Result{Message: "hello"}, "")

	assert.Empty(t, sender.sentMessages)
	assert.Empty(t, report.Steps)
}

func TestRenderEmbedIndependentOfMessage(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	embed := &discordgo.MessageEmbed{Title: "title"}
	report := r.Render(&script.Result{Embed: embed}, "channel-1")

	assert.Empty(t, sender.sentMessages)
	require.Len(t, sender.sentEmbeds, 1)
	assert.Equal(t, "msg-1", report.LastMessageID)
}

func TestRenderReactionsTargetLastMessage(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	r.Render(&script.Result{
		Message:   "text",
		Embed:     &discordgo.MessageEmbed{Title: "t"},
		Reactions: []string{"👍", "👎"},
	}, "channel-1")

	// Two messages sent; reactions go to the second.
	require.Len(t, sender.reactions, 2)
	assert.Equal(t, "msg-2:👍", sender.reactions[0])
	assert.Equal(t, "msg-2:👎", sender.reactions[1])
}

func TestRenderReactionsSkippedWithoutMessage(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	r.Render(&script.Result{Reactions: []string{"👍"}}, "channel-1")

	assert.Empty(t, sender.reactions)
}

func TestRenderReactionFailureDoesNotStopOthers(t *testing.T) {
	sender := &fakeSender{failReactions: map[string]bool{"💥": true}}
	r := newTestRenderer(sender)

	report := r.Render(&script.Result{
		Message:   "text",
		Reactions: []string{"💥", "👍"},
	}, "channel-1")

	require.Len(t, sender.reactions, 1)
	assert.Equal(t, "msg-1:👍", sender.reactions[0])
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "reaction 💥", report.Failed()[0].Step)
}

func TestRenderDeleteAfter(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	r.Render(&script.Result{Message: "temp", DeleteAfter: time.Second}, "channel-1")

	require.Len(t, sender.deleted, 1)
	assert.Equal(t, "msg-1", sender.deleted[0])
}

func TestRenderDeleteNotScheduledWithoutMessage(t *testing.T) {
	sender := &fakeSender{}
	r := newTestRenderer(sender)

	r.Render(&script.Result{DeleteAfter: time.Second}, "channel-1")

	assert.Empty(t, sender.deleted)
}

func TestRenderFailedMessageStillSendsEmbed(t *testing.T) {
	sender := &fakeSender{failMessage: true}
	r := newTestRenderer(sender)

	report := r.Render(&script.Result{
		Message: "text",
		Embed:   &discordgo.MessageEmbed{Title: "t"},
	}, "channel-1")

	require.Len(t, sender.sentEmbeds, 1)
	require.Len(t, report.Failed(), 1)
	assert.Equal(t, "message", report.Failed()[0].Step)
}
