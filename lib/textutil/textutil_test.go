package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollapse(t *testing.T) {
	require.Equal(t, "a b c", Collapse("  a\n\tb   c \n"))
	require.Equal(t, "", Collapse(" \n\t "))
}

func TestCollapseIdempotent(t *testing.T) {
	inputs := []string{
		"Answered 12\nquestions.\t Spent  34 min",
		"already collapsed",
		"",
		"   ",
	}
	for _, in := range inputs {
		once := Collapse(in)
		require.Equal(t, once, Collapse(once), "input: %q", in)
	}
}

func TestNormalizeSummary(t *testing.T) {
	got := NormalizeSummary("Answered 0 questions.\nSpent 0 min practicing.\nMade progress in 0 skills.")
	require.Equal(t, "answered 0 questions. spent 0 min practicing. made progress in 0 skills.", got)
}

func TestFirstField(t *testing.T) {
	require.Equal(t, "120", FirstField("120 XP this week"))
	require.Equal(t, "", FirstField("   "))
}
