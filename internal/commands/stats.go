package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/adamski234/yttrium-bot/internal/logging"
)

// handleStats replies with process and host statistics.
func (h *Handler) handleStats(s *discordgo.Session, m *discordgo.MessageCreate) {
	memUsage := "unknown"
	cpuUsage := "unknown"

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			memUsage = fmt.Sprintf("%.1f MiB", float64(info.RSS)/1024/1024)
		}
		if percent, err := proc.CPUPercent(); err == nil {
			cpuUsage = fmt.Sprintf("%.1f%%", percent)
		}
	}

	hostUptime := "unknown"
	if uptime, err := host.Uptime(); err == nil {
		hostUptime = (time.Duration(uptime) * time.Second).String()
	}

	embed := &discordgo.MessageEmbed{
		Title: "Bot statistics",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Guilds", Value: fmt.Sprintf("%d", len(s.State.Guilds)), Inline: true},
			{Name: "Memory", Value: memUsage, Inline: true},
			{Name: "CPU", Value: cpuUsage, Inline: true},
			{Name: "Host uptime", Value: hostUptime, Inline: true},
		},
	}

	if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
		logging.Error("Failed to send stats embed to channel %s: %v", m.ChannelID, err)
	}
}
