package database

import "github.com/Zickles/tanzanite/internal/cases"

// CaseRecord is one numbered entry in a guild's moderation history.
// CaseID is scoped to the guild and strictly increasing; rows are never
// deleted and only the reason may be amended after creation.
type CaseRecord struct {
	CaseID      int64
	GuildID     string
	UserID      string
	ModeratorID string
	Kind        cases.Type
	Reason      string
	Source      cases.Source
	CreatedAt   int64 // unix seconds, time of record creation
}

// GuildConfig represents guild-specific configuration
type GuildConfig struct {
	GuildID       string
	Prefix        string
	LogChannelID  string
	ManualLogging bool // opt-in: record punishments done through Discord's own UI
	CreatedAt     int64
	UpdatedAt     int64
}
