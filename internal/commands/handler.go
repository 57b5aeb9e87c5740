// Package commands implements the channel-text command surface: trigger
// and event-script management, guild settings, direct execution, and
// stats. Privileged commands pass through the authorization gate first.
package commands

import (
	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/database"
	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/internal/renderer"
	"github.com/adamski234/yttrium-bot/internal/script"
	"github.com/adamski234/yttrium-bot/pkg/util"
)

const genericFailure = "Something went wrong, try again later"

// ScriptRunner runs a script source with a prepared event payload. The
// event router satisfies it.
type ScriptRunner interface {
	Execute(guildID string, source string, event script.Event)
}

type Handler struct {
	db       *database.Database
	engine   script.Engine
	keys     *script.Registry
	renderer *renderer.Renderer
	runner   ScriptRunner

	// auth is swapped out by tests; the default is the role and
	// permission based gate in permissions.go.
	auth func(s *discordgo.Session, m *discordgo.MessageCreate, store *database.GuildStore) (bool, string)
}

func New(db *database.Database, engine script.Engine, keys *script.Registry, rend *renderer.Renderer, runner ScriptRunner) *Handler {
	return &Handler{
		db:       db,
		engine:   engine,
		keys:     keys,
		renderer: rend,
		runner:   runner,
		auth:     checkAuthorization,
	}
}

// Dispatch parses a message against the guild prefix and runs the named
// command. It reports false for non-commands and unknown names so the
// caller can fall through to trigger matching.
func (h *Handler) Dispatch(s *discordgo.Session, m *discordgo.MessageCreate, cfg database.GuildConfig) bool {
	content := m.Content
	if len(content) <= len(cfg.Prefix) || content[:len(cfg.Prefix)] != cfg.Prefix {
		return false
	}

	name, args := util.SplitCommand(content[len(cfg.Prefix):])
	store := h.db.Guild(m.GuildID)

	switch name {
	case "execute":
		h.handleExecute(m, args)
	case "show":
		h.handleShow(m, store, args)
	case "event_show":
		h.handleEventShow(m, store, args)
	case "stats":
		h.handleStats(s, m)
	case "add", "remove", "event_add", "event_remove", "prefix", "admin", "error_channel":
		allowed, reason := h.auth(s, m, store)
		if !allowed {
			h.renderer.Say(m.ChannelID, "Access denied: "+reason)
			logging.Info("Denied %s for user %s in guild %s: %s", name, m.Author.ID, m.GuildID, reason)
			return true
		}
		h.dispatchPrivileged(s, m, store, cfg, name, args)
	default:
		return false
	}

	return true
}

func (h *Handler) dispatchPrivileged(s *discordgo.Session, m *discordgo.MessageCreate, store *database.GuildStore, cfg database.GuildConfig, name, args string) {
	switch name {
	case "add":
		h.handleAdd(m, store, args)
	case "remove":
		h.handleRemove(m, store, args)
	case "event_add":
		h.handleEventAdd(m, store, args)
	case "event_remove":
		h.handleEventRemove(m, store, args)
	case "prefix":
		h.handlePrefix(m, store, cfg, args)
	case "admin":
		h.handleAdmin(s, m, store, cfg, args)
	case "error_channel":
		h.handleErrorChannel(s, m, store, cfg, args)
	}
}
