package bot

import (
	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/cases"
	"github.com/Zickles/tanzanite/internal/correlation"
	"github.com/Zickles/tanzanite/internal/logging"
)

// AuditReader adapts the Discord audit log REST endpoint to the correlation
// engine's AuditSource interface.
type AuditReader struct {
	session    *discordgo.Session
	botID      string
	fetchLimit int
}

func NewAuditReader(session *discordgo.Session, botID string, fetchLimit int) *AuditReader {
	if fetchLimit < 1 {
		fetchLimit = 10
	}
	return &AuditReader{
		session:    session,
		botID:      botID,
		fetchLimit: fetchLimit,
	}
}

// QueryRecentEntries fetches the most recent audit log entries for the
// action type behind the given case kind. Entry timestamps come from the
// entry snowflake, which Discord assigns at write time.
func (r *AuditReader) QueryRecentEntries(guildID string, kind cases.Type) ([]correlation.AuditEntry, error) {
	info := cases.Describe(kind)

	audit, err := r.session.GuildAuditLog(guildID, "", "", int(info.AuditAction), r.fetchLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]correlation.AuditEntry, 0, len(audit.AuditLogEntries))
	for _, entry := range audit.AuditLogEntries {
		createdAt, err := discordgo.SnowflakeTimestamp(entry.ID)
		if err != nil {
			logging.Debug("[AUDIT] Skipping entry with bad snowflake %q in guild %s", entry.ID, guildID)
			continue
		}
		entries = append(entries, correlation.AuditEntry{
			ExecutorID: entry.UserID,
			TargetID:   entry.TargetID,
			Reason:     entry.Reason,
			Time:       createdAt,
		})
	}

	return entries, nil
}

// CanReadAuditTrail checks whether the bot holds View Audit Log in the guild.
func (r *AuditReader) CanReadAuditTrail(guildID string) bool {
	guild, err := r.session.State.Guild(guildID)
	if err != nil {
		return false
	}
	if guild.OwnerID == r.botID {
		return true
	}

	member, err := r.session.State.Member(guildID, r.botID)
	if err != nil {
		member, err = r.session.GuildMember(guildID, r.botID)
		if err != nil {
			return false
		}
	}

	var perms int64
	for _, role := range guild.Roles {
		if role.ID == guildID {
			// @everyone applies to every member
			perms |= role.Permissions
			continue
		}
		for _, roleID := range member.Roles {
			if role.ID == roleID {
				perms |= role.Permissions
				break
			}
		}
	}

	return perms&(discordgo.PermissionViewAuditLogs|discordgo.PermissionAdministrator) != 0
}
