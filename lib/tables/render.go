package tables

import (
	"fmt"
	"html"
	"strings"
)

const (
	tableOpen = `<table border="1" cellpadding="4" style="border-collapse: collapse;">`
	shadedRow = `<tr><td colspan="%d" style="background-color: #e8e8e8; font-weight: bold;">%s</td></tr>`
)

// RenderActivityTable emits a bordered table for the report email. A
// DateSeparator renders as a full-width shaded row showing the date and
// its daily total; an ActivityItem renders as four cells in fixed column
// order.
func RenderActivityTable(rows []Row) string {
	var b strings.Builder
	b.WriteString(tableOpen)
	b.WriteString("<tr><th>Type</th><th>Name</th><th>Completion</th><th>Points</th></tr>")
	for _, row := range rows {
		switch r := row.(type) {
		case DateSeparator:
			label := html.EscapeString(r.Date)
			if r.TotalPoints != "" {
				label = fmt.Sprintf("%s &mdash; %s", label, html.EscapeString(r.TotalPoints))
			}
			b.WriteString(fmt.Sprintf(shadedRow, 4, label))
		case ActivityItem:
			b.WriteString(fmt.Sprintf(
				"<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>",
				html.EscapeString(r.Category),
				html.EscapeString(r.Name),
				html.EscapeString(r.CompletionState),
				html.EscapeString(r.Points),
			))
		}
	}
	b.WriteString("</table>")
	return b.String()
}
