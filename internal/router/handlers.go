package router

import (
	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/database"
	"github.com/adamski234/yttrium-bot/internal/logging"
	"github.com/adamski234/yttrium-bot/internal/script"
)

// CommandDispatcher is offered every incoming guild message before trigger
// matching runs. It reports whether it consumed the message as a command.
type CommandDispatcher interface {
	Dispatch(s *discordgo.Session, m *discordgo.MessageCreate, cfg database.GuildConfig) bool
}

// Register wires the router's handlers into the Discord session. Messages
// go through the command dispatcher first; everything else maps one event
// kind to one stored-script lookup.
func (r *Router) Register(s *discordgo.Session, commands CommandDispatcher) {
	s.AddHandler(func(sess *discordgo.Session, m *discordgo.MessageCreate) {
		r.handleMessage(sess, m, commands)
	})

	s.AddHandler(func(_ *discordgo.Session, c *discordgo.ChannelCreate) {
		if c.GuildID == "" {
			logging.Debug("Dropping ChannelCreate without a guild")
			return
		}
		r.DispatchEvent(c.GuildID, script.ChannelEvent{Event: script.EventChannelCreate, Channel: c.ID})
	})

	s.AddHandler(func(_ *discordgo.Session, c *discordgo.ChannelDelete) {
		if c.GuildID == "" {
			logging.Debug("Dropping ChannelDelete without a guild")
			return
		}
		r.DispatchEvent(c.GuildID, script.ChannelEvent{Event: script.EventChannelDelete, Channel: c.ID})
	})

	s.AddHandler(func(_ *discordgo.Session, c *discordgo.ChannelUpdate) {
		if c.GuildID == "" {
			logging.Debug("Dropping ChannelUpdate without a guild")
			return
		}
		r.DispatchEvent(c.GuildID, script.ChannelEvent{Event: script.EventChannelUpdate, Channel: c.ID})
	})

	s.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberAdd) {
		if m.GuildID == "" || m.User == nil {
			logging.Debug("Dropping MemberJoin without a guild or user")
			return
		}
		r.DispatchEvent(m.GuildID, script.MemberEvent{Event: script.EventMemberJoin, UserID: m.User.ID})
	})

	s.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberRemove) {
		if m.GuildID == "" || m.User == nil {
			logging.Debug("Dropping MemberLeave without a guild or user")
			return
		}
		r.DispatchEvent(m.GuildID, script.MemberEvent{Event: script.EventMemberLeave, UserID: m.User.ID})
	})

	s.AddHandler(func(_ *discordgo.Session, m *discordgo.GuildMemberUpdate) {
		if m.GuildID == "" || m.User == nil {
			logging.Debug("Dropping MemberUpdate without a guild or user")
			return
		}
		r.DispatchEvent(m.GuildID, script.MemberEvent{Event: script.EventMemberUpdate, UserID: m.User.ID})
	})

	s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleCreate) {
		if e.GuildID == "" || e.Role == nil {
			logging.Debug("Dropping RoleCreate without a guild or role")
			return
		}
		r.DispatchEvent(e.GuildID, script.RoleEvent{Event: script.EventRoleCreate, RoleID: e.Role.ID})
	})

	s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleUpdate) {
		if e.GuildID == "" || e.Role == nil {
			logging.Debug("Dropping RoleUpdate without a guild or role")
			return
		}
		r.DispatchEvent(e.GuildID, script.RoleEvent{Event: script.EventRoleUpdate, RoleID: e.Role.ID})
	})

	s.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleDelete) {
		if e.GuildID == "" {
			logging.Debug("Dropping RoleDelete without a guild")
			return
		}
		// Only the removed role's id survives; the full role data is gone.
		r.DispatchEvent(e.GuildID, script.RoleEvent{Event: script.EventRoleDelete, RoleID: e.RoleID})
	})

	s.AddHandler(func(_ *discordgo.Session, g *discordgo.GuildUpdate) {
		if g.Guild == nil || g.ID == "" {
			logging.Debug("Dropping GuildUpdate without a guild")
			return
		}
		r.DispatchEvent(g.ID, script.GuildEvent{})
	})

	s.AddHandler(func(_ *discordgo.Session, v *discordgo.VoiceStateUpdate) {
		// Voice updates carry the guild in the state itself; both the
		// event and the state must resolve one.
		if v.VoiceState == nil || v.GuildID == "" {
			logging.Debug("Dropping VoiceUpdate without a resolvable guild")
			return
		}
		r.DispatchEvent(v.GuildID, script.VoiceEvent{UserID: v.UserID, Channel: v.ChannelID})
	})

	s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageReactionAdd) {
		if e.GuildID == "" {
			logging.Debug("Dropping ReactionAdd without a guild")
			return
		}
		r.DispatchEvent(e.GuildID, script.ReactionEvent{
			Event:     script.EventReactionAdd,
			Channel:   e.ChannelID,
			MessageID: e.MessageID,
			UserID:    e.UserID,
			Emoji:     e.Emoji.APIName(),
		})
	})

	s.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageReactionRemove) {
		if e.GuildID == "" {
			logging.Debug("Dropping ReactionRemove without a guild")
			return
		}
		r.DispatchEvent(e.GuildID, script.ReactionEvent{
			Event:     script.EventReactionRemove,
			Channel:   e.ChannelID,
			MessageID: e.MessageID,
			UserID:    e.UserID,
			Emoji:     e.Emoji.APIName(),
		})
	})

	logging.Info("Event handlers registered")
}

func (r *Router) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate, commands CommandDispatcher) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	if m.GuildID == "" {
		return
	}

	cfg, err := r.db.Guild(m.GuildID).Config()
	if err != nil {
		logging.Error("Config lookup failed for guild %s, using defaults: %v", m.GuildID, err)
		cfg = database.GuildConfig{GuildID: m.GuildID, Prefix: database.DefaultPrefix}
	}

	if commands != nil && commands.Dispatch(s, m, cfg) {
		return
	}

	r.RunTriggers(m.GuildID, m.ChannelID, m.ID, m.Author.ID, m.Content)
}
