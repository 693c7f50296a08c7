package tables

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"studyreport/lib/htmlutil"
)

// Row classes in captured IXL trouble-spots markup.
const (
	improvementSubjectClass  = "subject-header"
	improvementCategoryClass = "category-header"
	improvementSkillClass    = "skill-row"

	improvementSkillName = ".skill-name"
	improvementSkillCode = ".skill-code"
	improvementTimeSpent = ".time-spent"
	improvementQuestions = ".questions-answered"
	improvementScore     = "span.score"
)

type ImprovementKind int

const (
	ImprovementSubjectHeader ImprovementKind = iota
	ImprovementCategoryHeader
	ImprovementSkill
)

// ImprovementRow is one classified row of the IXL skill-improvement table.
// Scores holds the 0, 1 or 2 score sub-elements found on a skill row; the
// ragged cases are real in the source data, not malformed input.
type ImprovementRow struct {
	Kind      ImprovementKind
	Label     string
	Skill     string
	Code      string
	TimeSpent string
	Questions string
	Scores    []string
}

// Improvement is the rendered score cell: "N/A" with no scores, "<v> to
// N/A" with one, "<from> to <to>" with two.
func (r ImprovementRow) Improvement() string {
	switch len(r.Scores) {
	case 0:
		return "N/A"
	case 1:
		return fmt.Sprintf("%s to N/A", r.Scores[0])
	default:
		return fmt.Sprintf("%s to %s", r.Scores[0], r.Scores[1])
	}
}

// ParseImprovementMarkup classifies each row of raw captured markup by its
// CSS class. Unrecognized rows are dropped.
func ParseImprovementMarkup(markup string) ([]ImprovementRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var rows []ImprovementRow
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		switch {
		case tr.HasClass(improvementSubjectClass):
			rows = append(rows, ImprovementRow{
				Kind:  ImprovementSubjectHeader,
				Label: htmlutil.CleanText(tr),
			})
		case tr.HasClass(improvementCategoryClass):
			rows = append(rows, ImprovementRow{
				Kind:  ImprovementCategoryHeader,
				Label: htmlutil.CleanText(tr),
			})
		case tr.HasClass(improvementSkillClass):
			row := ImprovementRow{
				Kind:      ImprovementSkill,
				Skill:     htmlutil.CleanText(tr.Find(improvementSkillName)),
				Code:      htmlutil.CleanText(tr.Find(improvementSkillCode)),
				TimeSpent: htmlutil.CleanText(tr.Find(improvementTimeSpent)),
				Questions: htmlutil.CleanText(tr.Find(improvementQuestions)),
			}
			// at most two score values ever appear; keep whatever is there
			tr.Find(improvementScore).Each(func(_ int, score *goquery.Selection) {
				row.Scores = append(row.Scores, htmlutil.CleanText(score))
			})
			rows = append(rows, row)
		}
	})
	return rows, nil
}

// RenderImprovementTable re-parses raw captured markup and rewrites it as
// a clean 5-column table. Subject/grade headers span the full width in
// bold, category headers in italics.
func RenderImprovementTable(markup string) (string, error) {
	rows, err := ParseImprovementMarkup(markup)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(tableOpen)
	b.WriteString("<tr><th>Subject/Category/Skill</th><th>Code</th><th>Time Spent</th><th>#</th><th>Score Improvement</th></tr>")
	for _, row := range rows {
		switch row.Kind {
		case ImprovementSubjectHeader:
			b.WriteString(fmt.Sprintf(shadedRow, 5, html.EscapeString(row.Label)))
		case ImprovementCategoryHeader:
			b.WriteString(fmt.Sprintf(
				`<tr><td colspan="5" style="font-style: italic;">%s</td></tr>`,
				html.EscapeString(row.Label),
			))
		case ImprovementSkill:
			b.WriteString(fmt.Sprintf(
				"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
				html.EscapeString(row.Skill),
				html.EscapeString(row.Code),
				html.EscapeString(row.TimeSpent),
				html.EscapeString(row.Questions),
				html.EscapeString(row.Improvement()),
			))
		}
	}
	b.WriteString("</table>")
	return b.String(), nil
}
