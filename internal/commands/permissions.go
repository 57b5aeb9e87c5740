package commands

import (
	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/database"
	"github.com/adamski234/yttrium-bot/internal/logging"
)

// checkAuthorization decides whether the invoking user may mutate guild
// configuration. Platform administrators are always allowed. Otherwise a
// configured admin role gates access; without one, the Manage Guild
// permission does.
func checkAuthorization(s *discordgo.Session, m *discordgo.MessageCreate, store *database.GuildStore) (bool, string) {
	permissions, err := s.State.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil {
		permissions, err = s.UserChannelPermissions(m.Author.ID, m.ChannelID)
		if err != nil {
			logging.Error("Permission lookup failed for user %s in guild %s: %v", m.Author.ID, m.GuildID, err)
			return false, "internal error, try again later"
		}
	}

	if permissions&discordgo.PermissionAdministrator != 0 {
		return true, ""
	}

	cfg, err := store.Config()
	if err != nil {
		logging.Error("Config lookup failed during authorization for guild %s: %v", m.GuildID, err)
		return false, "internal error, try again later"
	}

	if cfg.AdminRole != "" {
		for _, roleID := range memberRoles(s, m) {
			if roleID == cfg.AdminRole {
				return true, ""
			}
		}
		return false, "missing required role"
	}

	if permissions&discordgo.PermissionManageServer != 0 {
		return true, ""
	}
	return false, "missing Manage Guild permission"
}

func memberRoles(s *discordgo.Session, m *discordgo.MessageCreate) []string {
	if m.Member != nil {
		return m.Member.Roles
	}
	member, err := s.State.Member(m.GuildID, m.Author.ID)
	if err != nil {
		member, err = s.GuildMember(m.GuildID, m.Author.ID)
		if err != nil {
			logging.Warn("Member lookup failed for user %s in guild %s: %v", m.Author.ID, m.GuildID, err)
			return nil
		}
	}
	return member.Roles
}
