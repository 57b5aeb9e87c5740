package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/database"
	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/pkg/util"
)

func (h *Handler) handlePrefix(m *discordgo.MessageCreate, store *database.GuildStore, cfg database.GuildConfig, args string) {
	if args == "" {
		h.renderer.Say(m.ChannelID, fmt.Sprintf("The current prefix is `%s`", cfg.Prefix))
		return
	}

	// A prefix cannot contain whitespace; the command parser splits on it.
	prefix, rest := util.SplitCommand(args)
	if rest != "" {
		h.renderer.Say(m.ChannelID, "The prefix cannot contain spaces")
		return
	}

	if _, err := store.SetPrefix(prefix); err != nil {
		logging.Error("Failed to set prefix for guild %s: %v", m.GuildID, err)
		h.renderer.Say(m.ChannelID, genericFailure)
		return
	}

	h.renderer.Say(m.ChannelID, fmt.Sprintf("Prefix set to `%s`", prefix))
}

func (h *Handler) handleAdmin(s *discordgo.Session, m *discordgo.MessageCreate, store *database.GuildStore, cfg database.GuildConfig, args string) {
	if args == "" {
		if cfg.AdminRole == "" {
			h.renderer.Say(m.ChannelID, "No admin role is configured")
		} else {
			h.renderer.Say(m.ChannelID, fmt.Sprintf("The admin role is <@&%s>", cfg.AdminRole))
		}
		return
	}

	if args == "none" {
		if _, err := store.SetAdminRole(""); err != nil {
			logging.Error("Failed to clear admin role for guild %s: %v", m.GuildID, err)
			h.renderer.Say(m.ChannelID, genericFailure)
			return
		}
		h.renderer.Say(m.ChannelID, "Admin role cleared")
		return
	}

	role := resolveRole(s, m.GuildID, args)
	if role == nil {
		h.renderer.Say(m.ChannelID, "Role not found")
		return
	}

	if _, err := store.SetAdminRole(role.ID); err != nil {
		logging.Error("Failed to set admin role for guild %s: %v", m.GuildID, err)
		h.renderer.Say(m.ChannelID, genericFailure)
		return
	}

	h.renderer.Say(m.ChannelID, fmt.Sprintf("Admin role set to `%s`", role.Name))
}

func (h *Handler) handleErrorChannel(s *discordgo.Session, m *discordgo.MessageCreate, store *database.GuildStore, cfg database.GuildConfig, args string) {
	if args == "" {
		if cfg.ErrorChannel == "" {
			h.renderer.Say(m.ChannelID, "No error channel is configured")
		} else {
			h.renderer.Say(m.ChannelID, fmt.Sprintf("The error channel is <#%s>", cfg.ErrorChannel))
		}
		return
	}

	if args == "none" {
		if _, err := store.SetErrorChannel(""); err != nil {
			logging.Error("Failed to clear error channel for guild %s: %v", m.GuildID, err)
			h.renderer.Say(m.ChannelID, genericFailure)
			return
		}
		h.renderer.Say(m.ChannelID, "Error channel cleared")
		return
	}

	channel := resolveChannel(s, m.GuildID, args)
	if channel == nil {
		h.renderer.Say(m.ChannelID, "Channel not found")
		return
	}

	if _, err := store.SetErrorChannel(channel.ID); err != nil {
		logging.Error("Failed to set error channel for guild %s: %v", m.GuildID, err)
		h.renderer.Say(m.ChannelID, genericFailure)
		return
	}

	h.renderer.Say(m.ChannelID, fmt.Sprintf("Error channel set to <#%s>", channel.ID))
}
