// Package mathacademy drives the Math Academy student activity pages.
// Unlike the IXL dashboard there is no discovery step: student ids come
// preconfigured and each one maps straight to a URL.
package mathacademy

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"

	"studyreport/lib/browser"
	"studyreport/lib/report"
	"studyreport/lib/scrapers"
	"studyreport/lib/tables"
	"studyreport/lib/telemetry"
	"studyreport/lib/textutil"
)

var tracer = telemetry.Tracer("studyreport.lib.scrapers.mathacademy")

var (
	locUsername = browser.CSS("#usernameOrEmail")
	locPassword = browser.CSS("#password")
	locSubmit   = browser.CSS("#loginButton")

	locStudentName   = browser.CSS(".studentName")
	locWeeklyGoal    = browser.CSS(".weeklyXP")
	locWeeklyTotal   = browser.CSS(".totalXP")
	locActivityTable = browser.CSS("table.activityTable")
)

type Config struct {
	Username        string
	Password        string
	StudentIDs      []string
	LoginURL        string
	BaseActivityURL string
	Timeout         time.Duration
	SettleDelay     time.Duration
}

type Driver struct {
	config Config
}

func New(config Config) Driver {
	return Driver{config: config}
}

func (Driver) Platform() string {
	return "Math Academy"
}

// Collect logs in once and then processes each configured student id.
// One student's broken page is logged and skipped, never fatal.
func (d Driver) Collect(ctx context.Context, session *browser.Session) (map[string]report.EntityRecord, error) {
	ctx, span := tracer.Start(ctx, "Collect")
	defer span.End()

	if err := d.login(ctx, session); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return nil, fmt.Errorf("%w: %v", scrapers.ErrAuthenticationFailed, err)
	}

	records := map[string]report.EntityRecord{}
	for _, id := range d.config.StudentIDs {
		record, err := d.processStudent(ctx, session, id)
		if err != nil {
			slog.ErrorContext(ctx, "skipping student", "id", id, "err", err)
			continue
		}
		records[record.Name] = record
	}
	return records, nil
}

// login fills the two credential fields and submits, then waits for the
// URL to move off the login page. No URL change within the timeout means
// the login failed; the site shows errors inline without navigating.
func (d Driver) login(ctx context.Context, session *browser.Session) error {
	ctx, span := tracer.Start(ctx, "login")
	defer span.End()

	if err := session.Navigate(ctx, d.config.LoginURL); err != nil {
		return err
	}

	el, err := session.AwaitPresence(ctx, locUsername, d.config.Timeout)
	if err != nil {
		return err
	}
	if err := el.Input(d.config.Username); err != nil {
		return fmt.Errorf("input username: %w", err)
	}
	el, err = session.AwaitPresence(ctx, locPassword, d.config.Timeout)
	if err != nil {
		return err
	}
	if err := el.Input(d.config.Password); err != nil {
		return fmt.Errorf("input password: %w", err)
	}
	if _, err := session.AwaitClickable(ctx, locSubmit, d.config.Timeout); err != nil {
		return err
	}

	deadline := time.Now().Add(d.config.Timeout)
	for {
		current, err := session.CurrentURL()
		if err == nil && !strings.HasPrefix(current, d.config.LoginURL) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("still on login page after %s", d.config.Timeout)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(250 * time.Millisecond):
		}
	}
}

func (d Driver) processStudent(ctx context.Context, session *browser.Session, id string) (report.EntityRecord, error) {
	ctx, span := tracer.Start(ctx, "processStudent")
	defer span.End()

	url := fmt.Sprintf("%s/%s/activity", strings.TrimRight(d.config.BaseActivityURL, "/"), id)
	if err := session.Navigate(ctx, url); err != nil {
		return report.EntityRecord{}, err
	}
	// activity widgets fill in after load with no readiness signal
	select {
	case <-ctx.Done():
		return report.EntityRecord{}, ctx.Err()
	case <-time.After(d.config.SettleDelay):
	}

	name, err := d.fieldText(ctx, session, locStudentName)
	if err != nil {
		return report.EntityRecord{}, err
	}
	if name == "" {
		name = id
	}

	composite, err := d.fieldText(ctx, session, locWeeklyGoal)
	if err != nil {
		return report.EntityRecord{}, err
	}
	earned, goal := splitEarnedGoal(composite)

	totalField, err := d.fieldText(ctx, session, locWeeklyTotal)
	if err != nil {
		return report.EntityRecord{}, err
	}
	weeklyTotal := textutil.FirstField(totalField)

	tableEl, err := session.AwaitPresence(ctx, locActivityTable, d.config.Timeout)
	if err != nil {
		return report.EntityRecord{}, err
	}
	raw, err := tableEl.HTML()
	if err != nil {
		return report.EntityRecord{}, fmt.Errorf("capture activity markup: %w", err)
	}
	rows, err := tables.ParseActivityMarkup(raw)
	if err != nil {
		return report.EntityRecord{}, fmt.Errorf("parse activity markup: %w", err)
	}

	record := report.EntityRecord{
		Name: name,
		SummaryStats: textutil.NormalizeSummary(fmt.Sprintf(
			"Earned %s of %s XP toward this week's goal. %s XP total this week.",
			earned, goal, weeklyTotal,
		)),
	}
	if len(rows) > 0 {
		record.ProgressTable = tables.RenderActivityTable(rows)
	}

	slog.InfoContext(ctx, "processed student",
		"id", id, "name", name, "earned", earned, "goal", goal, "weekly_total", weeklyTotal,
		"activity_rows", len(rows))
	return record, nil
}

func (d Driver) fieldText(ctx context.Context, session *browser.Session, loc browser.Locator) (string, error) {
	el, err := session.AwaitPresence(ctx, loc, d.config.Timeout)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("%s: read text: %w", loc, err)
	}
	return textutil.Collapse(text), nil
}

// splitEarnedGoal takes the "earned / goal" composite, e.g. "125 / 500 XP":
// split on the slash, then take the goal's first token to strip the
// trailing unit.
func splitEarnedGoal(composite string) (earned, goal string) {
	parts := strings.SplitN(composite, "/", 2)
	earned = textutil.Collapse(parts[0])
	if len(parts) == 2 {
		goal = textutil.FirstField(parts[1])
	}
	return earned, goal
}
