package config

import (
	"encoding/json"
	"os"
)

type Config struct {
	Bot        BotConfig        `json:"bot"`
	Database   DatabaseConfig   `json:"database"`
	Moderation ModerationConfig `json:"moderation"`
	Logging    LoggingConfig    `json:"logging"`
}

type BotConfig struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

type ModerationConfig struct {
	// Delay before querying the audit log after a gateway event. The audit
	// log is written asynchronously on Discord's side and lags the event.
	GraceDelayMS int `json:"grace_delay_ms"`
	// Maximum allowed distance between the event time and the matched audit
	// entry's time. Entries further out are treated as clock skew.
	MatchToleranceS int    `json:"match_tolerance_s"`
	AuditFetchLimit int    `json:"audit_fetch_limit"`
	DefaultReason   string `json:"default_reason"`
}

type LoggingConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	GlobalConfig = &cfg
	return &cfg, nil
}

func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		applyEnvOverrides(cfg)
		GlobalConfig = cfg
	}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if clientID := os.Getenv("CLIENT_ID"); clientID != "" {
		cfg.Bot.ClientID = clientID
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Database.Path == "" {
		cfg.Database.Path = def.Database.Path
	}
	if cfg.Moderation.GraceDelayMS == 0 {
		cfg.Moderation.GraceDelayMS = def.Moderation.GraceDelayMS
	}
	if cfg.Moderation.MatchToleranceS == 0 {
		cfg.Moderation.MatchToleranceS = def.Moderation.MatchToleranceS
	}
	if cfg.Moderation.AuditFetchLimit == 0 {
		cfg.Moderation.AuditFetchLimit = def.Moderation.AuditFetchLimit
	}
	if cfg.Moderation.DefaultReason == "" {
		cfg.Moderation.DefaultReason = def.Moderation.DefaultReason
	}
	if cfg.Logging.Path == "" {
		cfg.Logging.Path = def.Logging.Path
	}
}

func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{},
		Database: DatabaseConfig{
			Path: "tanzanite.db",
		},
		Moderation: ModerationConfig{
			GraceDelayMS:    500,
			MatchToleranceS: 60,
			AuditFetchLimit: 10,
			DefaultReason:   "No reason given",
		},
		Logging: LoggingConfig{
			Level: "info",
			Path:  "tanzanite.log",
		},
	}
}

func Get() *Config {
	if GlobalConfig == nil {
		return DefaultConfig()
	}
	return GlobalConfig
}
