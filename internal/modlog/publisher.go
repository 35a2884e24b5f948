package modlog

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Zickles/tanzanite/internal/cases"
	"github.com/Zickles/tanzanite/internal/database"
	"github.com/Zickles/tanzanite/internal/logging"
	"github.com/Zickles/tanzanite/internal/metrics"
)

type Result uint8

const (
	ResultDelivered Result = iota
	// ResultSkipped means the guild has no modlog channel configured.
	// Logging is opt-in, so this is not an error.
	ResultSkipped
	// ResultFailed means the send itself failed. Delivery is single-attempt;
	// the case is already persisted regardless.
	ResultFailed
)

// ChannelResolver looks up a guild's configured modlog channel.
// Satisfied by *database.Database.
type ChannelResolver interface {
	GetLogChannel(guildID string) (string, error)
}

// Sender delivers an embed to a channel. Satisfied by *discordgo.Session.
type Sender interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type Publisher struct {
	channels ChannelResolver
	sender   Sender
}

func NewPublisher(channels ChannelResolver, sender Sender) *Publisher {
	return &Publisher{channels: channels, sender: sender}
}

// Render builds the modlog embed for a case record. It depends only on the
// record's fields, so the same record always renders identically.
func Render(record *database.CaseRecord) *discordgo.MessageEmbed {
	info := cases.Describe(record.Kind)

	action := info.Label
	if record.Source == cases.SourceManual {
		action = "Manual " + info.Label
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s %s", info.Emoji, action),
		Color: info.Color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "User",
				Value: fmt.Sprintf("<@%s> (`%s`)", record.UserID, record.UserID),
			},
			{
				Name:  "Moderator",
				Value: fmt.Sprintf("<@%s> (`%s`)", record.ModeratorID, record.ModeratorID),
			},
			{
				Name:  "Reason",
				Value: record.Reason,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Case #%d", record.CaseID),
		},
		Timestamp: time.Unix(record.CreatedAt, 0).UTC().Format(time.RFC3339),
	}
}

// Publish renders a case record and delivers it to the guild's modlog
// channel. One attempt only; a failed send is counted and logged but the
// caller's case is already durable.
func (p *Publisher) Publish(record *database.CaseRecord) Result {
	channelID, err := p.channels.GetLogChannel(record.GuildID)
	if err != nil {
		logging.Warn("Failed to resolve log channel for guild %s: %v", record.GuildID, err)
		metrics.IncPublishFailure()
		return ResultFailed
	}
	if channelID == "" {
		return ResultSkipped
	}

	if _, err := p.sender.ChannelMessageSendEmbed(channelID, Render(record)); err != nil {
		deliveryErr := &cases.DeliveryError{ChannelID: channelID, Err: err}
		logging.Warn("Case #%d in guild %s: %v", record.CaseID, record.GuildID, deliveryErr)
		metrics.IncPublishFailure()
		return ResultFailed
	}

	return ResultDelivered
}

// PublishWarning sends an operational warning embed to the guild's modlog
// channel, used when correlation degrades (missing permission, clock skew).
func (p *Publisher) PublishWarning(guildID, title, body string) Result {
	channelID, err := p.channels.GetLogChannel(guildID)
	if err != nil || channelID == "" {
		// Nowhere to surface the warning; the file log still has it.
		return ResultSkipped
	}

	embed := &discordgo.MessageEmbed{
		Title:       "⚠️ " + title,
		Description: body,
		Color:       0xFEE75C,
	}

	if _, err := p.sender.ChannelMessageSendEmbed(channelID, embed); err != nil {
		metrics.IncPublishFailure()
		return ResultFailed
	}
	return ResultDelivered
}
