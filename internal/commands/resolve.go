package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/logging"
)

// resolveRole finds a guild role by mention, id, or name.
func resolveRole(s *discordgo.Session, guildID, arg string) *discordgo.Role {
	if strings.HasPrefix(arg, "<@&") && strings.HasSuffix(arg, ">") {
		arg = arg[3 : len(arg)-1]
	}

	roles := guildRoles(s, guildID)
	for _, role := range roles {
		if role.ID == arg {
			return role
		}
	}
	for _, role := range roles {
		if strings.EqualFold(role.Name, arg) {
			return role
		}
	}
	return nil
}

// resolveChannel finds a guild channel by mention, id, or name.
func resolveChannel(s *discordgo.Session, guildID, arg string) *discordgo.Channel {
	if strings.HasPrefix(arg, "<#") && strings.HasSuffix(arg, ">") {
		arg = arg[2 : len(arg)-1]
	}

	channels := guildChannels(s, guildID)
	for _, channel := range channels {
		if channel.ID == arg {
			return channel
		}
	}
	for _, channel := range channels {
		if strings.EqualFold(channel.Name, arg) {
			return channel
		}
	}
	return nil
}

func guildRoles(s *discordgo.Session, guildID string) []*discordgo.Role {
	if guild, err := s.State.Guild(guildID); err == nil {
		return guild.Roles
	}
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		logging.Warn("Role list fetch failed for guild %s: %v", guildID, err)
		return nil
	}
	return roles
}

func guildChannels(s *discordgo.Session, guildID string) []*discordgo.Channel {
	if guild, err := s.State.Guild(guildID); err == nil {
		return guild.Channels
	}
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		logging.Warn("Channel list fetch failed for guild %s: %v", guildID, err)
		return nil
	}
	return channels
}
