package cases

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Type enumerates the moderation action kinds the bot records cases for.
type Type uint8

const (
	TypeBan Type = iota + 1
	TypePermBan
	TypeUnban
	TypeKick
	TypeMute
	TypeUnmute
	TypeWarn
)

// Source marks how a case came to exist: through a bot command or by
// correlating a manual action against the audit log.
type Source string

const (
	SourceBot    Source = "bot"
	SourceManual Source = "manual"
)

// Polarity says whether a kind applies a punishment or removes one.
type Polarity uint8

const (
	PolarityApply Polarity = iota
	PolarityRemove
)

// Info describes the fixed semantics of a case kind.
type Info struct {
	Label    string
	Polarity Polarity
	// Correlatable kinds have a corresponding audit log action type and can
	// be matched against manual punishments. Warns exist only inside the bot.
	Correlatable bool
	AuditAction  discordgo.AuditLogAction
	Color        int
	Emoji        string
}

var registry = map[Type]Info{
	TypeBan: {
		Label:        "Ban",
		Polarity:     PolarityApply,
		Correlatable: true,
		AuditAction:  discordgo.AuditLogActionMemberBanAdd,
		Color:        0xED4245,
		Emoji:        "🔨",
	},
	TypePermBan: {
		Label:        "Permanent Ban",
		Polarity:     PolarityApply,
		Correlatable: true,
		AuditAction:  discordgo.AuditLogActionMemberBanAdd,
		Color:        0xED4245,
		Emoji:        "🔨",
	},
	TypeUnban: {
		Label:        "Unban",
		Polarity:     PolarityRemove,
		Correlatable: true,
		AuditAction:  discordgo.AuditLogActionMemberBanRemove,
		Color:        0x57F287,
		Emoji:        "🔓",
	},
	TypeKick: {
		Label:        "Kick",
		Polarity:     PolarityApply,
		Correlatable: true,
		AuditAction:  discordgo.AuditLogActionMemberKick,
		Color:        0xFEE75C,
		Emoji:        "👢",
	},
	TypeMute: {
		Label:        "Mute",
		Polarity:     PolarityApply,
		Correlatable: true,
		AuditAction:  discordgo.AuditLogActionMemberUpdate,
		Color:        0xFEE75C,
		Emoji:        "🔇",
	},
	TypeUnmute: {
		Label:        "Unmute",
		Polarity:     PolarityRemove,
		Correlatable: true,
		AuditAction:  discordgo.AuditLogActionMemberUpdate,
		Color:        0x57F287,
		Emoji:        "🔊",
	},
	TypeWarn: {
		Label:        "Warn",
		Polarity:     PolarityApply,
		Correlatable: false,
		Color:        0xFEE75C,
		Emoji:        "⚠️",
	},
}

// Describe returns the semantics of a case kind. Unknown kinds come back as
// a non-correlatable zero Info so callers never have to handle an error.
func Describe(t Type) Info {
	return registry[t]
}

func (t Type) String() string {
	switch t {
	case TypeBan:
		return "ban"
	case TypePermBan:
		return "permban"
	case TypeUnban:
		return "unban"
	case TypeKick:
		return "kick"
	case TypeMute:
		return "mute"
	case TypeUnmute:
		return "unmute"
	case TypeWarn:
		return "warn"
	default:
		return "unknown"
	}
}

// ParseType is the inverse of String, used when loading cases from the database.
func ParseType(s string) (Type, error) {
	switch s {
	case "ban":
		return TypeBan, nil
	case "permban":
		return TypePermBan, nil
	case "unban":
		return TypeUnban, nil
	case "kick":
		return TypeKick, nil
	case "mute":
		return TypeMute, nil
	case "unmute":
		return TypeUnmute, nil
	case "warn":
		return TypeWarn, nil
	default:
		return 0, fmt.Errorf("unknown case type: %q", s)
	}
}

// AllTypes returns every registered kind, in display order.
func AllTypes() []Type {
	return []Type{TypeBan, TypePermBan, TypeUnban, TypeKick, TypeMute, TypeUnmute, TypeWarn}
}
