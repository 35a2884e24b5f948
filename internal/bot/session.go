package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/logging"
)

type Session struct {
	discord *discordgo.Session
	token   string
	BotID   string
}

var globalSession *Session

// Initialize creates and initializes the Discord session
func Initialize(token string) error {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return fmt.Errorf("failed to create Discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentsAll

	// Resolve the bot's own identity over REST before the gateway opens.
	// The correlation engine needs it to recognize its own audit entries,
	// and it has to exist before event handlers are registered.
	self, err := dg.User("@me")
	if err != nil {
		return fmt.Errorf("failed to fetch bot identity: %w", err)
	}

	globalSession = &Session{
		discord: dg,
		token:   token,
		BotID:   self.ID,
	}

	return nil
}

// GetSession returns the global Discord session
func GetSession() *Session {
	return globalSession
}

// GetDiscord returns the underlying discordgo session
func (s *Session) GetDiscord() *discordgo.Session {
	return s.discord
}

// Connect opens the Discord websocket connection
func (s *Session) Connect() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	logging.Info("Bot ID: %s", s.BotID)
	logging.Info("Discord bot connected successfully")
	return nil
}

// Close closes the Discord connection
func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

// RegisterCommands registers all slash commands with Discord
func (s *Session) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	logging.Info("Registering %d slash commands...", len(commands))

	for _, cmd := range commands {
		_, err := s.discord.ApplicationCommandCreate(s.BotID, "", cmd)
		if err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
		logging.Info("Registered command: /%s", cmd.Name)
	}

	return nil
}

// AddHandler adds an event handler to the Discord session
func (s *Session) AddHandler(handler interface{}) {
	s.discord.AddHandler(handler)
}

// SyncGuildConfigs makes sure every guild the bot is in has a config row.
func (s *Session) SyncGuildConfigs(db interface {
	EnsureGuildConfigExists(guildID string) error
}) error {
	logging.Info("Ensuring guild configurations exist...")

	for _, guild := range s.discord.State.Guilds {
		if err := db.EnsureGuildConfigExists(guild.ID); err != nil {
			logging.Warn("Failed to ensure config for guild %s: %v", guild.ID, err)
		}
	}

	logging.Info("Guild sync completed")
	return nil
}
