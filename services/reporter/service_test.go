package reporter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"studyreport/lib/browser"
	"studyreport/lib/notify"
	"studyreport/lib/report"
	"studyreport/lib/tables"
	"studyreport/lib/telemetry"
)

type fakeDriver struct {
	platform string
	records  map[string]report.EntityRecord
	err      error
	calls    int
}

func (d *fakeDriver) Platform() string { return d.platform }

func (d *fakeDriver) Collect(ctx context.Context, session *browser.Session) (map[string]report.EntityRecord, error) {
	d.calls++
	return d.records, d.err
}

func newTestService(t *testing.T, drivers ...Driver) Service {
	t.Helper()
	cleanup := telemetry.SetupForTesting(t, "test:services/reporter")
	t.Cleanup(cleanup)

	s := New(Options{
		Drivers:   drivers,
		Notifier:  notify.New(notify.Config{Host: "smtp.gmail.com", Port: 465}),
		SendEmail: false,
		ReportDir: t.TempDir(),
	})
	// the fakes never touch the session, so the run borrows none
	s.acquire = func(ctx context.Context) (*browser.Session, error) {
		return nil, nil
	}
	return s
}

func ixlFakeRecords(t *testing.T) map[string]report.EntityRecord {
	t.Helper()
	rows := []tables.Row{
		tables.DateSeparator{Date: "Mon, Sep 1", TotalPoints: "120 XP"},
		tables.ActivityItem{Category: "Lesson", Name: "Fractions", CompletionState: "Completed", Points: "12"},
		tables.ActivityItem{Category: "Review", Name: "Decimals", CompletionState: "Completed", Points: "8"},
		tables.ActivityItem{Category: "Quiz", Name: "Unit 3", CompletionState: "Completed", Points: "30"},
		tables.DateSeparator{Date: "Sun, Aug 31", TotalPoints: "80 XP"},
	}
	return map[string]report.EntityRecord{
		"Alice": {
			Name:         "Alice",
			SummaryStats: "answered 0 questions. spent 0 min practicing. made progress in 0 skills.",
		},
		"Bob": {
			Name:          "Bob",
			SummaryStats:  "answered 42 questions. spent 31 min practicing. made progress in 5 skills.",
			ProgressTable: tables.RenderActivityTable(rows),
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	ixl := &fakeDriver{platform: "IXL", records: ixlFakeRecords(t)}
	ma := &fakeDriver{platform: "Math Academy", records: map[string]report.EntityRecord{
		"Carol": {Name: "Carol", SummaryStats: "earned 120 of 300 xp toward this week's goal."},
		"Dave":  {Name: "Dave", SummaryStats: "earned 0 of 300 xp toward this week's goal."},
	}}

	s := newTestService(t, ixl, ma)
	require.NoError(t, s.Run(context.Background()))
	require.Equal(t, 1, ixl.calls)
	require.Equal(t, 1, ma.calls)

	// email is off, so the document lands on disk
	data, err := os.ReadFile(filepath.Join(s.options.ReportDir, "report.html"))
	require.NoError(t, err)
	doc := string(data)

	require.Equal(t, 2, strings.Count(doc, "<h2>"))
	require.Equal(t, 4, strings.Count(doc, "<h3>"))

	aliceSection := doc[strings.Index(doc, "<h3>Alice</h3>"):strings.Index(doc, "<h3>Bob</h3>")]
	require.NotContains(t, aliceSection, "<table")
	require.Contains(t, doc[strings.Index(doc, "<h3>Bob</h3>"):], "<table")
}

func TestRunPlatformFailureDoesNotStopOthers(t *testing.T) {
	failing := &fakeDriver{platform: "IXL", err: errors.New("authentication failed")}
	ok := &fakeDriver{platform: "Math Academy", records: map[string]report.EntityRecord{
		"Carol": {Name: "Carol", SummaryStats: "earned 120 of 300 xp."},
	}}

	s := newTestService(t, failing, ok)
	require.NoError(t, s.Run(context.Background()), "a platform failure must not fail the run")
	require.Equal(t, 1, failing.calls)
	require.Equal(t, 1, ok.calls, "second driver still runs after the first fails")

	data, err := os.ReadFile(filepath.Join(s.options.ReportDir, "report.html"))
	require.NoError(t, err)
	doc := string(data)
	require.Equal(t, 1, strings.Count(doc, "<h2>"), "only the surviving platform is in the report")
	require.Contains(t, doc, "Carol")
}

func TestRunKeepsPartialResultsFromFailedDriver(t *testing.T) {
	partial := &fakeDriver{
		platform: "IXL",
		records: map[string]report.EntityRecord{
			"Alice": {Name: "Alice", SummaryStats: "answered 3 questions."},
		},
		err: errors.New("date range selection failed halfway"),
	}

	s := newTestService(t, partial)
	require.NoError(t, s.Run(context.Background()))

	data, err := os.ReadFile(filepath.Join(s.options.ReportDir, "report.html"))
	require.NoError(t, err)
	require.Contains(t, string(data), "Alice")
}
