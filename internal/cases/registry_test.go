package cases

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribe_AllTypesRegistered(t *testing.T) {
	for _, kind := range AllTypes() {
		info := Describe(kind)
		require.NotEmpty(t, info.Label, "type %s has no label", kind)
		require.NotEmpty(t, info.Emoji, "type %s has no emoji", kind)
		require.NotZero(t, info.Color, "type %s has no color", kind)
	}
}

func TestDescribe_Polarity(t *testing.T) {
	require.Equal(t, PolarityApply, Describe(TypeBan).Polarity)
	require.Equal(t, PolarityApply, Describe(TypePermBan).Polarity)
	require.Equal(t, PolarityApply, Describe(TypeKick).Polarity)
	require.Equal(t, PolarityApply, Describe(TypeMute).Polarity)
	require.Equal(t, PolarityApply, Describe(TypeWarn).Polarity)
	require.Equal(t, PolarityRemove, Describe(TypeUnban).Polarity)
	require.Equal(t, PolarityRemove, Describe(TypeUnmute).Polarity)
}

func TestDescribe_WarnNotCorrelatable(t *testing.T) {
	// Warns have no audit log entry type; everything else does.
	require.False(t, Describe(TypeWarn).Correlatable)

	for _, kind := range AllTypes() {
		if kind == TypeWarn {
			continue
		}
		info := Describe(kind)
		require.True(t, info.Correlatable, "type %s should be correlatable", kind)
		require.NotZero(t, info.AuditAction, "correlatable type %s needs an audit action", kind)
	}
}

func TestDescribe_UnknownType(t *testing.T) {
	info := Describe(Type(200))
	require.False(t, info.Correlatable)
	require.Empty(t, info.Label)
}

func TestTypeStringRoundTrip(t *testing.T) {
	for _, kind := range AllTypes() {
		parsed, err := ParseType(kind.String())
		require.NoError(t, err)
		require.Equal(t, kind, parsed)
	}
}

func TestParseType_Unknown(t *testing.T) {
	_, err := ParseType("yeet")
	require.Error(t, err)
}
