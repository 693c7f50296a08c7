// Package report collects per-student records from the platform drivers
// into one document for the email notifier.
package report

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"
)

// EntityRecord is one student's stats under one platform. ProgressTable is
// a pre-rendered HTML fragment; empty means the student had no activity
// worth a detail table. Records are immutable once aggregated.
type EntityRecord struct {
	Name         string
	SummaryStats string
	// ProgressTable is optional; "" means absent.
	ProgressTable string
}

// Report maps platform name to student name to record. The same display
// name on two platforms is two distinct entries; no deduplication happens
// across platforms.
type Report map[string]map[string]EntityRecord

// Aggregate merges each driver's records under its platform key. Pure: the
// input maps are copied, not retained.
func Aggregate(platformResults map[string]map[string]EntityRecord) Report {
	out := Report{}
	for platform, records := range platformResults {
		entry := map[string]EntityRecord{}
		for name, record := range records {
			entry[name] = record
		}
		out[platform] = entry
	}
	return out
}

// Render produces the full HTML document: per platform a heading, then one
// sub-section per student with the summary line and, when present, the
// embedded progress table. Platforms and students are emitted in sorted
// order so the document is stable across runs.
func Render(r Report) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><body>")
	b.WriteString("<h1>Student Progress Report</h1>")

	platforms := make([]string, 0, len(r))
	for platform := range r {
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)

	for _, platform := range platforms {
		b.WriteString(fmt.Sprintf("<h2>%s</h2>", html.EscapeString(platform)))

		records := r[platform]
		names := make([]string, 0, len(records))
		for name := range records {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			record := records[name]
			b.WriteString(fmt.Sprintf("<h3>%s</h3>", html.EscapeString(record.Name)))
			b.WriteString(fmt.Sprintf("<p>%s</p>", html.EscapeString(record.SummaryStats)))
			if record.ProgressTable != "" {
				b.WriteString(record.ProgressTable)
			}
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}

// Subject is the email subject line for a run dated now.
func Subject(now time.Time) string {
	return fmt.Sprintf("Student Progress Report for %s", now.Format("Mon, Jan 2 2006"))
}
