package modlog

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/Zickles/tanzanite/internal/cases"
	"github.com/Zickles/tanzanite/internal/database"
)

type fakeResolver struct {
	channel string
	err     error
}

func (f *fakeResolver) GetLogChannel(guildID string) (string, error) {
	return f.channel, f.err
}

type fakeSender struct {
	err      error
	channels []string
	embeds   []*discordgo.MessageEmbed
}

func (f *fakeSender) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.channels = append(f.channels, channelID)
	f.embeds = append(f.embeds, embed)
	return &discordgo.Message{}, nil
}

func sampleRecord() *database.CaseRecord {
	return &database.CaseRecord{
		CaseID:      7,
		GuildID:     "g1",
		UserID:      "u1",
		ModeratorID: "m1",
		Kind:        cases.TypeBan,
		Reason:      "spam",
		Source:      cases.SourceManual,
		CreatedAt:   1700000000,
	}
}

func TestRender_Deterministic(t *testing.T) {
	a, err := json.Marshal(Render(sampleRecord()))
	require.NoError(t, err)
	b, err := json.Marshal(Render(sampleRecord()))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRender_Fields(t *testing.T) {
	embed := Render(sampleRecord())

	require.Equal(t, "🔨 Manual Ban", embed.Title)
	require.Equal(t, 0xED4245, embed.Color)
	require.Equal(t, "Case #7", embed.Footer.Text)
	require.Equal(t, "2023-11-14T22:13:20Z", embed.Timestamp)

	require.Len(t, embed.Fields, 3)
	require.Contains(t, embed.Fields[0].Value, "u1")
	require.Contains(t, embed.Fields[1].Value, "m1")
	require.Equal(t, "spam", embed.Fields[2].Value)
}

func TestRender_BotSourceHasNoManualPrefix(t *testing.T) {
	record := sampleRecord()
	record.Source = cases.SourceBot

	embed := Render(record)
	require.Equal(t, "🔨 Ban", embed.Title)
}

func TestPublish_SkippedWhenNoChannelConfigured(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(&fakeResolver{}, sender)

	result := p.Publish(sampleRecord())

	require.Equal(t, ResultSkipped, result)
	require.Empty(t, sender.embeds)
}

func TestPublish_Delivered(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(&fakeResolver{channel: "c1"}, sender)

	result := p.Publish(sampleRecord())

	require.Equal(t, ResultDelivered, result)
	require.Equal(t, []string{"c1"}, sender.channels)
	require.Equal(t, "Case #7", sender.embeds[0].Footer.Text)
}

func TestPublish_FailedOnSendError(t *testing.T) {
	p := NewPublisher(&fakeResolver{channel: "c1"}, &fakeSender{err: errors.New("403")})

	require.Equal(t, ResultFailed, p.Publish(sampleRecord()))
}

func TestPublish_FailedOnResolverError(t *testing.T) {
	p := NewPublisher(&fakeResolver{err: errors.New("db down")}, &fakeSender{})

	require.Equal(t, ResultFailed, p.Publish(sampleRecord()))
}

func TestPublishWarning_SkippedWhenNoChannel(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(&fakeResolver{}, sender)

	require.Equal(t, ResultSkipped, p.PublishWarning("g1", "title", "body"))
	require.Empty(t, sender.embeds)
}

func TestPublishWarning_Delivered(t *testing.T) {
	sender := &fakeSender{}
	p := NewPublisher(&fakeResolver{channel: "c1"}, sender)

	require.Equal(t, ResultDelivered, p.PublishWarning("g1", "Tracking degraded", "details"))
	require.Contains(t, sender.embeds[0].Title, "Tracking degraded")
}
