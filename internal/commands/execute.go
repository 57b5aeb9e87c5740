package commands

import (
	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/script"
)

// handleExecute interprets the argument immediately and renders whatever
// it produces. No rule is stored.
func (h *Handler) handleExecute(m *discordgo.MessageCreate, args string) {
	if args == "" {
		h.renderer.Say(m.ChannelID, "You need to provide a script to execute")
		return
	}

	h.runner.Execute(m.GuildID, args, script.DefaultEvent{Channel: m.ChannelID})
}
