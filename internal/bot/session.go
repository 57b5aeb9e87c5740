package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/adamski234/yttrium-bot/internal/logging"
)

type Session struct {
	discord *discordgo.Session
	token   string
}

var globalSession *Session

// Initialize creates the Discord session. The bot listens to every guild
// event kind it can route, so all intents are requested.
func Initialize(token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsAll

	globalSession = &Session{
		discord: dg,
		token:   token,
	}

	return nil
}

// GetSession returns the global Discord session.
func GetSession() *Session {
	return globalSession
}

// GetDiscord returns the underlying discordgo session.
func (s *Session) GetDiscord() *discordgo.Session {
	return s.discord
}

// Connect opens the Discord websocket connection.
func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		logging.Info("Connected as %s (ID %s)", s.discord.State.User.Username, s.discord.State.User.ID)
	}

	return nil
}

// Close closes the Discord connection.
func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}
