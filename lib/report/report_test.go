package report

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAggregateKeepsPlatformsSeparate(t *testing.T) {
	in := map[string]map[string]EntityRecord{
		"IXL": {
			"Alice": {Name: "Alice", SummaryStats: "answered 10 questions."},
		},
		"Math Academy": {
			"Alice": {Name: "Alice", SummaryStats: "earned 50 / 100 xp this week."},
		},
	}
	got := Aggregate(in)

	require.Len(t, got, 2)
	require.NotEqual(t, got["IXL"]["Alice"], got["Math Academy"]["Alice"])

	// mutating the input must not reach into the aggregate
	in["IXL"]["Alice"] = EntityRecord{Name: "Mallory"}
	require.Equal(t, "Alice", got["IXL"]["Alice"].Name)
}

func TestAggregateCopies(t *testing.T) {
	in := map[string]map[string]EntityRecord{
		"IXL": {"Bob": {Name: "Bob"}},
	}
	got := Aggregate(in)
	if diff := cmp.Diff(Report{"IXL": {"Bob": {Name: "Bob"}}}, got); diff != "" {
		t.Fatalf("aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderEndToEnd(t *testing.T) {
	table := `<table border="1"><tr><th>Type</th></tr></table>`
	results := map[string]map[string]EntityRecord{
		"IXL": {
			"Alice": {
				Name:         "Alice",
				SummaryStats: "answered 0 questions. spent 0 min practicing. made progress in 0 skills.",
			},
			"Bob": {
				Name:          "Bob",
				SummaryStats:  "answered 42 questions. spent 31 min practicing. made progress in 5 skills.",
				ProgressTable: table,
			},
		},
		"Math Academy": {
			"Carol": {Name: "Carol", SummaryStats: "earned 120 / 300 xp.", ProgressTable: table},
			"Dave":  {Name: "Dave", SummaryStats: "earned 0 / 300 xp."},
		},
	}

	rep := Aggregate(results)
	total := 0
	for _, records := range rep {
		total += len(records)
	}
	require.Equal(t, 4, total)

	doc := Render(rep)
	require.Equal(t, 2, strings.Count(doc, "<h2>"), "exactly one h2 per platform")
	require.Equal(t, 4, strings.Count(doc, "<h3>"), "exactly one sub-section per student")

	// the zero-activity student has no embedded table
	aliceSection := doc[strings.Index(doc, "<h3>Alice</h3>"):strings.Index(doc, "<h3>Bob</h3>")]
	require.NotContains(t, aliceSection, "<table")
	bobSection := doc[strings.Index(doc, "<h3>Bob</h3>"):strings.Index(doc, "<h2>Math Academy</h2>")]
	require.Contains(t, bobSection, "<table")
}

func TestRenderDeterministic(t *testing.T) {
	rep := Report{
		"B platform": {"x": {Name: "x"}},
		"A platform": {"y": {Name: "y"}},
	}
	require.Equal(t, Render(rep), Render(rep))
	require.Less(t,
		strings.Index(Render(rep), "A platform"),
		strings.Index(Render(rep), "B platform"))
}

func TestSubject(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	require.Equal(t, "Student Progress Report for Tue, Sep 1 2026", Subject(now))
}
