package commands

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/database"
	"github.com/Zickles/tanzanite/internal/modlog"
)

// handleReason amends the reason of an existing case and shows the updated
// record. Reason is the only field that may change after creation.
func handleReason(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := i.ApplicationCommandData().Options
	caseID := opts[0].IntValue()
	reason := opts[1].StringValue()

	db := database.GetDB()
	if err := db.AmendReason(i.GuildID, caseID, reason); err != nil {
		return err
	}

	record, err := db.GetCase(i.GuildID, caseID)
	if err != nil {
		return err
	}

	return respondEmbed(s, i, modlog.Render(record))
}
