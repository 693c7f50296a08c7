// Package tables turns raw captured table markup from the two platforms
// into typed rows and re-renders them as clean fragments for the report.
package tables

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"studyreport/lib/htmlutil"
)

// Selectors inside a captured Math Academy activity table.
const (
	activityDateCell   = "td.date"
	activityDailyTotal = "span.dailyPoints"
	activityTaskType   = "td.taskType"
	activityTaskName   = "td.taskName"
	activityCompleted  = "td.taskCompleted"
	activityPoints     = "td.taskPoints"
)

// Row is either a DateSeparator or an ActivityItem; document order is
// preserved by ParseActivityMarkup.
type Row interface {
	isRow()
}

// DateSeparator marks a day boundary in a chronological activity listing.
type DateSeparator struct {
	Date        string
	TotalPoints string
}

// ActivityItem is one task line under a day.
type ActivityItem struct {
	Category        string
	Name            string
	CompletionState string
	Points          string
}

func (DateSeparator) isRow() {}
func (ActivityItem) isRow()  {}

// ParseActivityMarkup walks table rows in document order. A row with no
// class attribute that contains a date cell becomes a DateSeparator; its
// embedded daily-total sub-element is pulled out of the date text first.
// Parsing stops entirely once two separators have been emitted: the report
// only ever wants today plus the prior day for context. Classed rows
// become ActivityItems while the date counter is below 3, with each of the
// four sub-fields independently optional.
func ParseActivityMarkup(markup string) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	var rows []Row
	dates := 0
	doc.Find("tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		if _, hasClass := tr.Attr("class"); !hasClass {
			dateCell := tr.Find(activityDateCell)
			if dateCell.Length() == 0 {
				return true
			}
			total := dateCell.Find(activityDailyTotal)
			totalText := htmlutil.CleanText(total)
			total.Remove()
			rows = append(rows, DateSeparator{
				Date:        htmlutil.CleanText(dateCell),
				TotalPoints: totalText,
			})
			dates++
			return dates < 2
		}
		if dates >= 3 {
			return true
		}
		rows = append(rows, ActivityItem{
			Category:        htmlutil.CleanText(tr.Find(activityTaskType)),
			Name:            htmlutil.CleanText(tr.Find(activityTaskName)),
			CompletionState: htmlutil.CleanText(tr.Find(activityCompleted)),
			Points:          htmlutil.CleanText(tr.Find(activityPoints)),
		})
		return true
	})

	return rows, nil
}
