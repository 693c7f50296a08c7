package tables

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const activityFixture = `<table><tbody>
<tr><td class="date">Mon, Sep 1<span class="dailyPoints">120 XP</span></td></tr>
<tr class="taskRow"><td class="taskType">Lesson</td><td class="taskName">Fractions</td><td class="taskCompleted">Completed</td><td class="taskPoints">12</td></tr>
<tr class="taskRow"><td class="taskName">Untyped task</td></tr>
<tr class="taskRow"><td class="taskType">Review</td><td class="taskName">Decimals</td><td class="taskCompleted">Completed</td><td class="taskPoints">8</td></tr>
<tr><td class="date">Sun, Aug 31<span class="dailyPoints">80 XP</span></td></tr>
<tr class="taskRow"><td class="taskType">Quiz</td><td class="taskName">Unit 3</td><td class="taskCompleted">Completed</td><td class="taskPoints">30</td></tr>
<tr><td class="date">Sat, Aug 30<span class="dailyPoints">60 XP</span></td></tr>
<tr class="taskRow"><td class="taskType">Old</td><td class="taskName">Should never appear</td></tr>
</tbody></table>`

func TestParseActivityMarkup(t *testing.T) {
	rows, err := ParseActivityMarkup(activityFixture)
	require.NoError(t, err)

	require.Equal(t, []Row{
		DateSeparator{Date: "Mon, Sep 1", TotalPoints: "120 XP"},
		ActivityItem{Category: "Lesson", Name: "Fractions", CompletionState: "Completed", Points: "12"},
		ActivityItem{Category: "", Name: "Untyped task", CompletionState: "", Points: ""},
		ActivityItem{Category: "Review", Name: "Decimals", CompletionState: "Completed", Points: "8"},
		DateSeparator{Date: "Sun, Aug 31", TotalPoints: "80 XP"},
	}, rows)
}

// Truncation law: at most two date separators come out, and every
// activity item appears before where a third separator would have been.
func TestParseActivityMarkupTruncation(t *testing.T) {
	rows, err := ParseActivityMarkup(activityFixture)
	require.NoError(t, err)

	separators := 0
	for _, row := range rows {
		if _, ok := row.(DateSeparator); ok {
			separators++
			continue
		}
		require.Less(t, separators, 2, "no activity items after the second separator")
	}
	require.Equal(t, 2, separators)

	for _, row := range rows {
		if item, ok := row.(ActivityItem); ok {
			require.NotEqual(t, "Should never appear", item.Name)
		}
	}
}

func TestParseActivityMarkupEmpty(t *testing.T) {
	rows, err := ParseActivityMarkup("<table><tbody></tbody></table>")
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestRenderActivityTable(t *testing.T) {
	rows := []Row{
		DateSeparator{Date: "Mon, Sep 1", TotalPoints: "120 XP"},
		ActivityItem{Category: "Lesson", Name: "Fractions & Decimals", CompletionState: "Completed", Points: "12"},
	}
	out := RenderActivityTable(rows)

	require.Contains(t, out, "<th>Type</th><th>Name</th><th>Completion</th><th>Points</th>")
	require.Contains(t, out, `colspan="4"`)
	require.Contains(t, out, "Mon, Sep 1 &mdash; 120 XP")
	require.Contains(t, out, "Fractions &amp; Decimals")
	require.Equal(t, 1, strings.Count(out, "<table"))
}
