package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/cases"
	"github.com/Zickles/tanzanite/internal/database"
	"github.com/Zickles/tanzanite/internal/metrics"
	"github.com/Zickles/tanzanite/internal/modlog"
)

// handleBan executes a ban through the dispatcher, then records and
// publishes the case. The case is only created after the action succeeds.
func handleBan(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user, reason := userAndReason(s, i)

	if err := executor.ExecuteBan(i.GuildID, user.ID, reason); err != nil {
		return err
	}

	return recordAndRespond(s, i, user.ID, cases.TypeBan, reason)
}

func handleUnban(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user, reason := userAndReason(s, i)

	if err := executor.ExecuteUnban(i.GuildID, user.ID, reason); err != nil {
		return err
	}

	return recordAndRespond(s, i, user.ID, cases.TypeUnban, reason)
}

func handleKick(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user, reason := userAndReason(s, i)

	if err := executor.ExecuteKick(i.GuildID, user.ID, reason); err != nil {
		return err
	}

	return recordAndRespond(s, i, user.ID, cases.TypeKick, reason)
}

func handleMute(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	opts := i.ApplicationCommandData().Options
	user := opts[0].UserValue(s)

	duration, err := parseTimeoutDuration(opts[1].StringValue())
	if err != nil {
		return fmt.Errorf("invalid duration %q (use forms like 10m, 2h, 7d)", opts[1].StringValue())
	}
	if duration <= 0 || duration > 28*24*time.Hour {
		return fmt.Errorf("duration must be between 1s and 28 days")
	}

	reason := ""
	if len(opts) > 2 {
		reason = opts[2].StringValue()
	}

	if err := executor.ExecuteTimeout(i.GuildID, user.ID, time.Now().Add(duration), reason); err != nil {
		return err
	}

	return recordAndRespond(s, i, user.ID, cases.TypeMute, reason)
}

// handleWarn records a case without any platform action: warns exist only in
// the bot's own ledger.
func handleWarn(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	user, reason := userAndReason(s, i)
	return recordAndRespond(s, i, user.ID, cases.TypeWarn, reason)
}

func recordAndRespond(s *discordgo.Session, i *discordgo.InteractionCreate, userID string, kind cases.Type, reason string) error {
	db := database.GetDB()
	record, err := db.CreateCase(i.GuildID, userID, i.Member.User.ID, kind, reason, cases.SourceBot)
	if err != nil {
		// The platform action (if any) already happened; say so.
		return fmt.Errorf("action performed but case could not be recorded: %v", err)
	}
	metrics.IncCaseCreated()

	publisher.Publish(record)
	return respondEmbed(s, i, modlog.Render(record))
}

// parseTimeoutDuration accepts the usual time.ParseDuration forms plus a
// day suffix, since timeouts are commonly given as whole days.
func parseTimeoutDuration(s string) (time.Duration, error) {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(days * 24 * float64(time.Hour)), nil
	}
	return time.ParseDuration(s)
}

func userAndReason(s *discordgo.Session, i *discordgo.InteractionCreate) (*discordgo.User, string) {
	opts := i.ApplicationCommandData().Options
	user := opts[0].UserValue(s)
	reason := ""
	if len(opts) > 1 {
		reason = opts[1].StringValue()
	}
	return user, reason
}
