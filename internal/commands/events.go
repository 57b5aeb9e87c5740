package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/database"
	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/internal/script"
	"github.com/adamski234/yttrium-bot/pkg/util"
)

func (h *Handler) handleEventAdd(m *discordgo.MessageCreate, store *database.GuildStore, args string) {
	kindName, code := util.SplitCommand(args)
	kind, ok := script.ParseEventKind(kindName)
	if !ok {
		h.renderer.Say(m.ChannelID, "You need to provide a correct event type")
		return
	}
	if code == "" {
		h.renderer.Say(m.ChannelID, "You need to provide a response to the event")
		return
	}

	warnings, ok := h.validateScript(m, code)
	if !ok {
		return
	}

	if err := store.PutEventScript(kind.String(), code); err != nil {
		logging.Error("Failed to store %s script for guild %s: %v", kind, m.GuildID, err)
		h.renderer.Say(m.ChannelID, genericFailure)
		return
	}

	if len(warnings) > 0 {
		h.renderer.Say(m.ChannelID, "Event added, but it has the following errors:\n "+warningText(warnings))
	} else {
		h.renderer.Say(m.ChannelID, "Event added")
	}
}

func (h *Handler) handleEventRemove(m *discordgo.MessageCreate, store *database.GuildStore, args string) {
	kindName, _ := util.SplitCommand(args)
	kind, ok := script.ParseEventKind(kindName)
	if !ok {
		h.renderer.Say(m.ChannelID, "You need to provide a correct event type")
		return
	}

	removed, err := store.DeleteEventScript(kind.String())
	if err != nil {
		logging.Error("Failed to delete %s script for guild %s: %v", kind, m.GuildID, err)
		h.renderer.Say(m.ChannelID, genericFailure)
		return
	}

	if removed {
		h.renderer.Say(m.ChannelID, "Event deleted")
	} else {
		h.renderer.Say(m.ChannelID, "Event not found")
	}
}

func (h *Handler) handleEventShow(m *discordgo.MessageCreate, store *database.GuildStore, args string) {
	kindName, _ := util.SplitCommand(args)
	kind, ok := script.ParseEventKind(kindName)
	if !ok {
		h.renderer.Say(m.ChannelID, "You need to provide a correct event type")
		return
	}

	code, found, err := store.GetEventScript(kind.String())
	if err != nil {
		logging.Error("Failed to read %s script for guild %s: %v", kind, m.GuildID, err)
		return
	}
	if !found {
		h.renderer.Say(m.ChannelID, "Event not found")
		return
	}

	h.renderer.Say(m.ChannelID, fmt.Sprintf("```\n%s\n```", code))
}
