package commands

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"
)

func TestGetAllCommands_GuildOnly(t *testing.T) {
	// All handlers read i.Member; a DM-usable command would hand them a
	// memberless interaction.
	for _, cmd := range GetAllCommands() {
		require.NotNil(t, cmd.DMPermission, "command /%s must declare DM availability", cmd.Name)
		require.False(t, *cmd.DMPermission, "command /%s must not be usable in DMs", cmd.Name)
	}
}

func TestGuildInvocation(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		GuildID: "g1",
		Member:  &discordgo.Member{User: &discordgo.User{ID: "m1"}},
	}}
	require.True(t, guildInvocation(guild))

	// A DM interaction carries User instead of Member.
	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		User: &discordgo.User{ID: "u1"},
	}}
	require.False(t, guildInvocation(dm))

	partial := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		GuildID: "g1",
		Member:  &discordgo.Member{},
	}}
	require.False(t, guildInvocation(partial))
}

func TestParseTimeoutDuration(t *testing.T) {
	for in, want := range map[string]time.Duration{
		"10m":  10 * time.Minute,
		"2h":   2 * time.Hour,
		"1d":   24 * time.Hour,
		"7d":   7 * 24 * time.Hour,
		"1.5d": 36 * time.Hour,
	} {
		got, err := parseTimeoutDuration(in)
		require.NoError(t, err, "input %q", in)
		require.Equal(t, want, got, "input %q", in)
	}

	for _, in := range []string{"", "d", "xd", "tomorrow"} {
		_, err := parseTimeoutDuration(in)
		require.Error(t, err, "input %q", in)
	}
}
