package vcs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStatus_Valid(t *testing.T) {
	tests := []struct {
		input string
		kind  StatusKind
		score int
		str   string
	}{
		{"A", StatusAdded, 0, "A"},
		{"M", StatusModified, 0, "M"},
		{"D", StatusDeleted, 0, "D"},
		{"U", StatusUnmerged, 0, "U"},
		{"R100", StatusRenamed, 100, "R100"},
		{"R", StatusRenamed, 100, "R100"},
		{"C75", StatusCopied, 75, "C75"},
		{"C", StatusCopied, 100, "C100"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := ParseStatus(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.kind, s.Kind())
			require.Equal(t, tt.score, s.Score())
			require.Equal(t, tt.str, s.String())
		})
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, s := range []string{"", "X", "M5", "A1", "R0", "R101", "Rxx", "C-5"} {
		_, err := ParseStatus(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestStatus_Predicates(t *testing.T) {
	s, err := ParseStatus("R90")
	require.NoError(t, err)
	require.True(t, s.IsRenamed())
	require.False(t, s.IsAdded())
	require.False(t, s.IsModified())
	require.False(t, s.IsDeleted())
	require.False(t, s.IsCopied())
	require.False(t, s.IsUnmerged())
}
