package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/bot"
	"github.com/Zickles/tanzanite/internal/dispatcher"
	"github.com/Zickles/tanzanite/internal/logging"
	"github.com/Zickles/tanzanite/internal/modlog"
)

// Handler manages all command interactions
type Handler struct {
	session *bot.Session
}

var (
	globalHandler *Handler
	executor      *dispatcher.ActionExecutor
	publisher     *modlog.Publisher
)

// Initialize registers the interaction handler and all slash commands.
func Initialize(session *bot.Session, exec *dispatcher.ActionExecutor, pub *modlog.Publisher) error {
	globalHandler = &Handler{session: session}
	executor = exec
	publisher = pub

	session.AddHandler(globalHandler.handleInteraction)

	commands := GetAllCommands()
	if err := session.RegisterCommands(commands); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized with %d commands", len(commands))
	return nil
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	h.handleCommand(s, i)
}

// guildInvocation reports whether the interaction carries a guild member.
// DM interactions have User set instead of Member, and every handler needs
// the invoking member as the moderator.
func guildInvocation(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.User != nil
}

// handleCommand routes slash commands to their handlers
func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !guildInvocation(i) {
		respondError(s, i, "this command can only be used in a server")
		return
	}

	data := i.ApplicationCommandData()

	var err error
	switch data.Name {
	case "ban":
		err = handleBan(s, i)
	case "unban":
		err = handleUnban(s, i)
	case "kick":
		err = handleKick(s, i)
	case "mute":
		err = handleMute(s, i)
	case "warn":
		err = handleWarn(s, i)
	case "cases":
		err = handleCases(s, i)
	case "reason":
		err = handleReason(s, i)
	case "modlogs":
		err = handleModlogs(s, i)
	case "botinfo":
		err = handleBotInfo(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		logging.Error("Command error [%s]: %v", data.Name, err)
		respondError(s, i, err.Error())
	}
}

// respondError sends an ephemeral error message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ Error: %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}
