package commands

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/cases"
	"github.com/Zickles/tanzanite/internal/database"
)

const maxCasesShown = 15

// handleCases shows a user's moderation history.
func handleCases(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := i.ApplicationCommandData().Options
	user := opts[0].UserValue(s)

	db := database.GetDB()

	var lines []string
	total := 0
	err := db.FindCasesByUser(i.GuildID, user.ID, func(record *database.CaseRecord) bool {
		total++
		if len(lines) < maxCasesShown {
			info := cases.Describe(record.Kind)
			lines = append(lines, fmt.Sprintf("`#%d` %s **%s**: %s (<t:%d:R>)",
				record.CaseID, info.Emoji, info.Label, record.Reason, record.CreatedAt))
		}
		return true
	})
	if err != nil {
		return err
	}

	description := "No cases on record."
	if total > 0 {
		description = strings.Join(lines, "\n")
		if total > maxCasesShown {
			description += fmt.Sprintf("\n… and %d more", total-maxCasesShown)
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📋 Moderation history (%d cases)", total),
		Description: description,
		Color:       0x5865F2,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("User ID: %s", user.ID),
		},
	}

	return respondEmbed(s, i, embed)
}
