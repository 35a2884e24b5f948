package commands

import "github.com/bwmarrin/discordgo"

var (
	permBan      int64 = discordgo.PermissionBanMembers
	permKick     int64 = discordgo.PermissionKickMembers
	permModerate int64 = discordgo.PermissionModerateMembers
	permManage   int64 = discordgo.PermissionManageServer

	// Every command acts on a guild; none of them makes sense in a DM,
	// and the handlers rely on the invoking member being present.
	guildOnly = false
)

// GetAllCommands returns all slash command definitions
func GetAllCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "ban",
			Description:              "Ban a user and record a case",
			DefaultMemberPermissions: &permBan,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("The user to ban"),
				reasonOption(),
			},
		},
		{
			Name:                     "unban",
			Description:              "Remove a ban and record a case",
			DefaultMemberPermissions: &permBan,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("The user to unban"),
				reasonOption(),
			},
		},
		{
			Name:                     "kick",
			Description:              "Kick a member and record a case",
			DefaultMemberPermissions: &permKick,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("The member to kick"),
				reasonOption(),
			},
		},
		{
			Name:                     "mute",
			Description:              "Time out a member and record a case",
			DefaultMemberPermissions: &permModerate,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("The member to mute"),
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "duration",
					Description: "How long, e.g. 10m, 2h, 7d",
					Required:    true,
				},
				reasonOption(),
			},
		},
		{
			Name:                     "warn",
			Description:              "Warn a member and record a case",
			DefaultMemberPermissions: &permModerate,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("The member to warn"),
				reasonOption(),
			},
		},
		{
			Name:                     "cases",
			Description:              "Show a user's moderation history",
			DefaultMemberPermissions: &permModerate,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("The user to look up"),
			},
		},
		{
			Name:                     "reason",
			Description:              "Amend the reason of an existing case",
			DefaultMemberPermissions: &permModerate,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "case",
					Description: "The case number",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "reason",
					Description: "The new reason",
					Required:    true,
				},
			},
		},
		{
			Name:                     "modlogs",
			Description:              "Configure moderation logging",
			DefaultMemberPermissions: &permManage,
			DMPermission:             &guildOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "channel",
					Description: "Set the channel case logs are sent to",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionChannel,
							Name:        "channel",
							Description: "The modlog channel",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "manual",
					Description: "Toggle tracking of punishments done through Discord directly",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "enabled",
							Description: "Whether to record manual punishments",
							Required:    true,
						},
					},
				},
			},
		},
		{
			Name:         "botinfo",
			Description:  "Show bot and host statistics",
			DMPermission: &guildOnly,
		},
	}
}

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    true,
	}
}

func reasonOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "reason",
		Description: "The reason for this action",
		Required:    false,
	}
}
