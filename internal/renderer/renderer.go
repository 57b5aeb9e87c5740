// Package renderer turns a script result into platform side effects: a
// text post, an embed, reactions, and an optional delayed deletion. The
// steps run in a fixed order and each failure is recorded without stopping
// the steps after it.
package renderer

import (
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/internal/script"
)

// Sender is the slice of the Discord client the renderer needs. A
// *discordgo.Session satisfies it.
type Sender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
}

// StepOutcome records one pipeline step's result.
type StepOutcome struct {
	Step string
	Err  error
}

// Report collects the outcome of every attempted step of one render.
type Report struct {
	// LastMessageID is the most recently sent message, the target for
	// reactions and delayed deletion. Empty when nothing was sent.
	LastMessageID string
	ChannelID     string
	Steps         []StepOutcome
}

func (r *Report) record(step string, err error) {
	r.Steps = append(r.Steps, StepOutcome{Step: step, Err: err})
	if err != nil {
		logging.Error("Render step %s failed in channel %s: %v", step, r.ChannelID, err)
	}
}

// Failed returns the outcomes of steps that errored.
func (r *Report) Failed() []StepOutcome {
	var failed []StepOutcome
	for _, step := range r.Steps {
		if step.Err != nil {
			failed = append(failed, step)
		}
	}
	return failed
}

type Renderer struct {
	sender Sender
	// schedule defers the delete step without blocking the caller. Tests
	// replace it; the default is time.AfterFunc.
	schedule func(d time.Duration, fn func())
}

func New(sender Sender) *Renderer {
	return &Renderer{
		sender: sender,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
}

// Say sends plain text to a channel, outside of a result pipeline. The
// router and command layer use it for replies and error reports.
func (r *Renderer) Say(channelID, content string) {
	if channelID == "" {
		return
	}
	if _, err := r.sender.ChannelMessageSend(channelID, content); err != nil {
		logging.Error("Failed to send message to channel %s: %v", channelID, err)
	}
}

// Render performs the result's side effects. originChannel is the channel
// the triggering flow came from; the result's Target overrides it. A
// result with no output at all is a valid, silent outcome.
func (r *Renderer) Render(result *script.Result, originChannel string) *Report {
	report := &Report{}
	if result == nil {
		return report
	}

	channelID := originChannel
	if result.Target != "" {
		channelID = result.Target
	}
	report.ChannelID = channelID

	text := renderText(result)
	if channelID == "" {
		if text != "" || result.Embed != nil {
			logging.Warn("Dropping script output: no valid channel to render to")
		}
		return report
	}

	if text != "" {
		msg, err := r.sender.ChannelMessageSend(channelID, text)
		report.record("message", err)
		if err == nil {
			report.LastMessageID = msg.ID
		}
	}

	if result.Embed != nil {
		msg, err := r.sender.ChannelMessageSendEmbed(channelID, result.Embed)
		report.record("embed", err)
		if err == nil {
			report.LastMessageID = msg.ID
		}
	}

	if report.LastMessageID == "" {
		return report
	}

	for _, emoji := range result.Reactions {
		err := r.sender.MessageReactionAdd(channelID, report.LastMessageID, emoji)
		report.record("reaction "+emoji, err)
	}

	if result.DeleteAfter > 0 {
		messageID := report.LastMessageID
		r.schedule(result.DeleteAfter, func() {
			if err := r.sender.ChannelMessageDelete(channelID, messageID); err != nil {
				logging.Error("Failed to delete message %s in channel %s: %v", messageID, channelID, err)
			}
		})
		report.record("delete scheduled", nil)
	}

	return report
}

// renderText joins warning lines and the message body into the single
// text post. An empty combination means no post.
func renderText(result *script.Result) string {
	if len(result.Warnings) == 0 {
		return result.Message
	}

	var b strings.Builder
	for _, warning := range result.Warnings {
		b.WriteString(warning.Message())
		b.WriteString("\n")
	}
	b.WriteString(result.Message)
	return strings.TrimSuffix(b.String(), "\n")
}
