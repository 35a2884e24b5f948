package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/cases"
	"github.com/Zickles/tanzanite/internal/correlation"
	"github.com/Zickles/tanzanite/internal/database"
	"github.com/Zickles/tanzanite/internal/logging"
)

// SetupEventHandlers wires gateway events into the correlation engine. Every
// handler only observes; punishment events that turn out to be the bot's own
// work are filtered inside the engine, not here.
func (s *Session) SetupEventHandlers(engine *correlation.Engine, db *database.Database) {
	logging.Info("Setting up Discord event handlers...")

	s.discord.AddHandler(func(sess *discordgo.Session, r *discordgo.Ready) {
		logging.Info("Bot ready! Connected as %s (%d guilds)", r.User.Username, len(r.Guilds))
	})

	s.discord.AddHandler(func(sess *discordgo.Session, g *discordgo.GuildCreate) {
		logging.Info("Bot joined/loaded guild: %s (ID: %s)", g.Name, g.ID)
		if err := db.EnsureGuildConfigExists(g.ID); err != nil {
			logging.Warn("Failed to ensure config for guild %s: %v", g.ID, err)
		}
	})

	// A ban seen on the gateway might be manual; let the engine decide.
	s.discord.AddHandler(func(sess *discordgo.Session, b *discordgo.GuildBanAdd) {
		if b.GuildID == "" || b.User == nil {
			return
		}
		engine.HandleTrigger(correlation.Trigger{
			GuildID:    b.GuildID,
			UserID:     b.User.ID,
			Kind:       cases.TypeBan,
			ObservedAt: time.Now(),
		})
	})

	s.discord.AddHandler(func(sess *discordgo.Session, b *discordgo.GuildBanRemove) {
		if b.GuildID == "" || b.User == nil {
			return
		}
		engine.HandleTrigger(correlation.Trigger{
			GuildID:    b.GuildID,
			UserID:     b.User.ID,
			Kind:       cases.TypeUnban,
			ObservedAt: time.Now(),
		})
	})

	// Member removal is ambiguous: leave, kick, or ban. The engine's audit
	// query disambiguates; a voluntary leave simply finds no kick entry.
	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.GuildMemberRemove) {
		if m.GuildID == "" || m.User == nil {
			return
		}
		engine.HandleTrigger(correlation.Trigger{
			GuildID:    m.GuildID,
			UserID:     m.User.ID,
			Kind:       cases.TypeKick,
			ObservedAt: time.Now(),
		})
	})

	// Timeouts arrive as member updates to communication_disabled_until.
	s.discord.AddHandler(func(sess *discordgo.Session, m *discordgo.GuildMemberUpdate) {
		if m.GuildID == "" || m.User == nil {
			return
		}

		now := time.Now()
		after := timeoutActive(m.Member, now)
		before := m.BeforeUpdate != nil && timeoutActive(m.BeforeUpdate, now)

		var kind cases.Type
		switch {
		case after && !before:
			kind = cases.TypeMute
		case before && !after:
			kind = cases.TypeUnmute
		default:
			return
		}

		engine.HandleTrigger(correlation.Trigger{
			GuildID:    m.GuildID,
			UserID:     m.User.ID,
			Kind:       kind,
			ObservedAt: now,
		})
	})
}

func timeoutActive(m *discordgo.Member, now time.Time) bool {
	return m != nil && m.CommunicationDisabledUntil != nil && m.CommunicationDisabledUntil.After(now)
}
