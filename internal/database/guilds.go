package database

import (
	"database/sql"
	"time"
)

// GetGuildConfig retrieves guild configuration, falling back to defaults for
// guilds that have never been configured.
func (d *Database) GetGuildConfig(guildID string) (*GuildConfig, error) {
	var cfg GuildConfig
	var manualLogging int
	err := d.db.QueryRow(
		`SELECT guild_id, prefix, log_channel_id, manual_logging, created_at, updated_at
		 FROM guild_config WHERE guild_id = ?`,
		guildID,
	).Scan(&cfg.GuildID, &cfg.Prefix, &cfg.LogChannelID, &manualLogging, &cfg.CreatedAt, &cfg.UpdatedAt)

	if err == sql.ErrNoRows {
		now := time.Now().Unix()
		return &GuildConfig{
			GuildID:   guildID,
			Prefix:    "-",
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	cfg.ManualLogging = manualLogging != 0
	return &cfg, nil
}

// UpsertGuildConfig creates or updates guild configuration
func (d *Database) UpsertGuildConfig(cfg *GuildConfig) error {
	cfg.UpdatedAt = time.Now().Unix()
	if cfg.CreatedAt == 0 {
		cfg.CreatedAt = cfg.UpdatedAt
	}

	manualLogging := 0
	if cfg.ManualLogging {
		manualLogging = 1
	}

	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO guild_config (guild_id, prefix, log_channel_id, manual_logging, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		cfg.GuildID, cfg.Prefix, cfg.LogChannelID, manualLogging, cfg.CreatedAt, cfg.UpdatedAt,
	)
	return err
}

// EnsureGuildConfigExists inserts a default config row for guilds the bot
// just joined, leaving existing rows untouched.
func (d *Database) EnsureGuildConfigExists(guildID string) error {
	now := time.Now().Unix()
	_, err := d.db.Exec(
		`INSERT OR IGNORE INTO guild_config (guild_id, prefix, log_channel_id, manual_logging, created_at, updated_at)
		 VALUES (?, '-', '', 0, ?, ?)`,
		guildID, now, now,
	)
	return err
}

// IsManualLoggingEnabled reports whether the guild opted in to recording
// punishments performed through Discord's own UI.
func (d *Database) IsManualLoggingEnabled(guildID string) bool {
	var enabled int
	err := d.db.QueryRow(
		`SELECT manual_logging FROM guild_config WHERE guild_id = ?`, guildID,
	).Scan(&enabled)
	return err == nil && enabled != 0
}

// GetLogChannel returns the guild's modlog channel ID, empty when logging is
// not configured.
func (d *Database) GetLogChannel(guildID string) (string, error) {
	var channelID string
	err := d.db.QueryRow(
		`SELECT log_channel_id FROM guild_config WHERE guild_id = ?`, guildID,
	).Scan(&channelID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return channelID, nil
}

// SetLogChannel updates the guild's modlog destination.
func (d *Database) SetLogChannel(guildID, channelID string) error {
	cfg, err := d.GetGuildConfig(guildID)
	if err != nil {
		return err
	}
	cfg.LogChannelID = channelID
	return d.UpsertGuildConfig(cfg)
}

// SetManualLogging toggles manual-punishment tracking for the guild.
func (d *Database) SetManualLogging(guildID string, enabled bool) error {
	cfg, err := d.GetGuildConfig(guildID)
	if err != nil {
		return err
	}
	cfg.ManualLogging = enabled
	return d.UpsertGuildConfig(cfg)
}
