package tables

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const improvementFixture = `<table><tbody>
<tr class="subject-header"><td>Math: Grade 6</td></tr>
<tr class="category-header"><td>Fractions</td></tr>
<tr class="skill-row">
  <td class="skill-name">Add fractions</td>
  <td class="skill-code">F.1</td>
  <td class="time-spent">12 min</td>
  <td class="questions-answered">20</td>
  <td><span class="score">65</span><span class="score">83</span></td>
</tr>
<tr class="skill-row">
  <td class="skill-name">Subtract fractions</td>
  <td class="skill-code">F.2</td>
  <td class="time-spent">4 min</td>
  <td class="questions-answered">5</td>
  <td><span class="score">72</span></td>
</tr>
<tr class="skill-row">
  <td class="skill-name">Multiply fractions</td>
  <td class="skill-code">F.3</td>
  <td class="time-spent">1 min</td>
  <td class="questions-answered">1</td>
  <td></td>
</tr>
<tr><td>stray unclassified row</td></tr>
</tbody></table>`

func TestParseImprovementMarkup(t *testing.T) {
	rows, err := ParseImprovementMarkup(improvementFixture)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	require.Equal(t, ImprovementSubjectHeader, rows[0].Kind)
	require.Equal(t, "Math: Grade 6", rows[0].Label)
	require.Equal(t, ImprovementCategoryHeader, rows[1].Kind)
	require.Equal(t, "Fractions", rows[1].Label)

	require.Equal(t, ImprovementSkill, rows[2].Kind)
	require.Equal(t, "Add fractions", rows[2].Skill)
	require.Equal(t, []string{"65", "83"}, rows[2].Scores)
}

func TestImprovementCell(t *testing.T) {
	require.Equal(t, "N/A", ImprovementRow{}.Improvement())
	require.Equal(t, "72 to N/A", ImprovementRow{Scores: []string{"72"}}.Improvement())
	require.Equal(t, "65 to 83", ImprovementRow{Scores: []string{"65", "83"}}.Improvement())
}

func TestRenderImprovementTable(t *testing.T) {
	out, err := RenderImprovementTable(improvementFixture)
	require.NoError(t, err)

	require.Contains(t, out, "<th>Subject/Category/Skill</th><th>Code</th><th>Time Spent</th><th>#</th><th>Score Improvement</th>")
	require.Contains(t, out, `colspan="5" style="background-color`)
	require.Contains(t, out, `colspan="5" style="font-style: italic;">Fractions`)
	require.Contains(t, out, "<td>65 to 83</td>")
	require.Contains(t, out, "<td>72 to N/A</td>")
	require.Contains(t, out, "<td>N/A</td>")
	require.NotContains(t, out, "stray unclassified row")
}
