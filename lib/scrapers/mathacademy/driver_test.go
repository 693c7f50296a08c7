package mathacademy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitEarnedGoal(t *testing.T) {
	cases := []struct {
		in     string
		earned string
		goal   string
	}{
		{"125 / 500 XP", "125", "500"},
		{"0/300 XP", "0", "300"},
		{"75 / 75", "75", "75"},
		{"no slash here", "no slash here", ""},
		{"", "", ""},
	}
	for _, c := range cases {
		earned, goal := splitEarnedGoal(c.in)
		require.Equal(t, c.earned, earned, "input: %q", c.in)
		require.Equal(t, c.goal, goal, "input: %q", c.in)
	}
}
