package ixl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"

	"studyreport/lib/tables"
)

func renderDetail(raw string) (string, error) {
	return tables.RenderImprovementTable(raw)
}

// logTroubleSpots prints the row-by-row extraction as a text table.
// Headless runs are otherwise opaque; this is how an operator checks what
// the driver actually read without opening the emailed report.
func logTroubleSpots(ctx context.Context, student, raw string) {
	rows, err := tables.ParseImprovementMarkup(raw)
	if err != nil {
		slog.WarnContext(ctx, "could not parse trouble spots for logging", "student", student, "err", err)
		return
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Skill", "Code", "Time Spent", "#", "Improvement"})
	for _, row := range rows {
		switch row.Kind {
		case tables.ImprovementSubjectHeader, tables.ImprovementCategoryHeader:
			t.AppendRow(table.Row{row.Label})
		case tables.ImprovementSkill:
			t.AppendRow(table.Row{row.Skill, row.Code, row.TimeSpent, row.Questions, row.Improvement()})
		}
	}

	slog.InfoContext(ctx, "trouble spots extracted", "student", student, "rows", len(rows))
	fmt.Println(t.Render())
}
