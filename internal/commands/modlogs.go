package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/database"
)

// handleModlogs routes the /modlogs configuration subcommands.
func handleModlogs(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("missing subcommand")
	}

	switch data.Options[0].Name {
	case "channel":
		return handleModlogsChannel(s, i)
	case "manual":
		return handleModlogsManual(s, i)
	default:
		return fmt.Errorf("unknown subcommand: %s", data.Options[0].Name)
	}
}

func handleModlogsChannel(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	options := i.ApplicationCommandData().Options[0].Options
	channelID := options[0].ChannelValue(s).ID

	db := database.GetDB()
	if err := db.SetLogChannel(i.GuildID, channelID); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Send a test embed so a missing permission shows up now, not on the
	// first real case.
	testEmbed := &discordgo.MessageEmbed{
		Title:       "✅ Moderation Logging Enabled",
		Description: "Case logs for this server will be sent to this channel.",
		Color:       0x57F287,
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, testEmbed); err != nil {
		return fmt.Errorf("failed to send test message (check bot permissions): %w", err)
	}

	confirmEmbed := &discordgo.MessageEmbed{
		Title:       "✅ Log Channel Configured",
		Description: fmt.Sprintf("Moderation cases will be sent to <#%s>", channelID),
		Color:       0x57F287,
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{confirmEmbed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func handleModlogsManual(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	options := i.ApplicationCommandData().Options[0].Options
	enabled := options[0].BoolValue()

	db := database.GetDB()
	if err := db.SetManualLogging(i.GuildID, enabled); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	status := "disabled"
	description := "Punishments done through Discord directly will no longer be recorded."
	if enabled {
		status = "enabled"
		description = "Bans, kicks and timeouts done through Discord directly will now be matched " +
			"against the audit log and recorded as cases. Make sure I have the **View Audit Log** permission."
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("✅ Manual punishment tracking %s", status),
		Description: description,
		Color:       0x57F287,
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}
