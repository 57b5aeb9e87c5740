package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/database"
	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/internal/matcher"
	"github.com/adamski234/yttrium-bot/internal/script"
	"github.com/adamski234/yttrium-bot/pkg/util"
)

func (h *Handler) handleAdd(m *discordgo.MessageCreate, store *database.GuildStore, args string) {
	pattern, code := util.QuotedArg(args)
	if pattern == "" {
		h.renderer.Say(m.ChannelID, "You need to provide a trigger")
		return
	}
	if code == "" {
		h.renderer.Say(m.ChannelID, "The trigger does not have a response")
		return
	}

	if _, err := matcher.Classify(pattern); err != nil {
		h.renderer.Say(m.ChannelID, "The regex in your trigger is invalid")
		return
	}

	warnings, ok := h.validateScript(m, code)
	if !ok {
		return
	}

	if err := store.PutRule(pattern, code); err != nil {
		logging.Error("Failed to store trigger %q for guild %s: %v", pattern, m.GuildID, err)
		h.renderer.Say(m.ChannelID, genericFailure)
		return
	}

	if len(warnings) > 0 {
		h.renderer.Say(m.ChannelID, "Trigger added, but it has the following errors:\n "+warningText(warnings))
	} else {
		h.renderer.Say(m.ChannelID, "Trigger added")
	}
}

func (h *Handler) handleRemove(m *discordgo.MessageCreate, store *database.GuildStore, args string) {
	pattern, _ := util.QuotedArg(args)
	if pattern == "" {
		h.renderer.Say(m.ChannelID, "You need to provide a trigger")
		return
	}

	removed, err := store.DeleteRule(pattern)
	if err != nil {
		logging.Error("Failed to delete trigger %q for guild %s: %v", pattern, m.GuildID, err)
		h.renderer.Say(m.ChannelID, genericFailure)
		return
	}

	if removed {
		h.renderer.Say(m.ChannelID, "Trigger deleted")
	} else {
		h.renderer.Say(m.ChannelID, "Trigger not found")
	}
}

func (h *Handler) handleShow(m *discordgo.MessageCreate, store *database.GuildStore, args string) {
	pattern, _ := util.QuotedArg(args)
	if pattern == "" {
		h.renderer.Say(m.ChannelID, "You need to provide a trigger")
		return
	}

	code, found, err := store.GetRule(pattern)
	if err != nil {
		logging.Error("Failed to read trigger %q for guild %s: %v", pattern, m.GuildID, err)
		return
	}
	if !found {
		h.renderer.Say(m.ChannelID, "Trigger not found")
		return
	}

	classified, err := matcher.Classify(pattern)
	if err != nil {
		logging.Error("Stored trigger %q in guild %s failed to classify: %v", pattern, m.GuildID, err)
		return
	}

	h.renderer.Say(m.ChannelID, fmt.Sprintf("Trigger type: %s\n```\n%s\n```", classified.Kind, code))
}

// validateScript compiles code and reports hard validation errors to the
// user. It returns the non-fatal warnings and whether the script may be
// persisted.
func (h *Handler) validateScript(m *discordgo.MessageCreate, code string) ([]script.Warning, bool) {
	warnings, err := h.engine.Compile(code, h.keys)
	if err == nil {
		return warnings, true
	}

	switch {
	case errors.Is(err, script.ErrWrongParamCount):
		h.renderer.Say(m.ChannelID, "One of your keys has invalid amount of parameters")
	case errors.Is(err, script.ErrEmptyParam):
		h.renderer.Say(m.ChannelID, "One of your keys has an empty parameter")
	case errors.Is(err, script.ErrNonexistentKey):
		h.renderer.Say(m.ChannelID, "One of your keys does not exist")
	default:
		logging.Error("Script validation failed in guild %s: %v", m.GuildID, err)
		h.renderer.Say(m.ChannelID, genericFailure)
	}
	return nil, false
}

func warningText(warnings []script.Warning) string {
	lines := make([]string, 0, len(warnings))
	for _, warning := range warnings {
		lines = append(lines, warning.Message())
	}
	return strings.Join(lines, "\n")
}
