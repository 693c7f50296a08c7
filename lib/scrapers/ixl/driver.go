// Package ixl drives the IXL analytics dashboard: log in, scope to a
// subaccount and date range, then walk the student dropdown extracting
// usage stats and, for active students, the trouble-spots detail table.
package ixl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"studyreport/lib/browser"
	"studyreport/lib/report"
	"studyreport/lib/scrapers"
	"studyreport/lib/textutil"
)

// ZeroActivitySummary is the exact summary the dashboard shows for a
// student with no usage in the selected range, in normalized form. It
// gates whether the trouble-spots detail view is worth visiting.
const ZeroActivitySummary = "answered 0 questions. spent 0 min practicing. made progress in 0 skills."

// selectStudentAttempts bounds the stale-reference retry on the one
// interaction known to race client-side navigation.
const selectStudentAttempts = 3

const enumeratePoll = 250 * time.Millisecond

var (
	locUsername     = browser.CSS("#qlusername")
	locPassword     = browser.CSS("#qlpassword")
	locSubmit       = browser.CSS("#qlsubmit")
	locParentAvatar = browser.CSS(".field:nth-child(4) .avatar-image")
	locAccountTitle = browser.CSS(".select-title > .option-selection")

	// the student dropdown and its moving parts
	locStudentDropdown  = browser.CSS(".option-select.global.default.active")
	locDropdownOpener   = browser.CSS(".option-select.global.default.active .select-title .prompt-query-or-selection-wrapper")
	locSelectionDisplay = browser.CSS(".option-select.global.default.active .select-title .option-selection")
	studentOptionsCSS   = ".option-select.global.default.active .select-dropdown .option"
	accountOptionsCSS   = ".select-dropdown .option"

	locDateRangeOpener  = browser.CSS(".date-range-select .select-title")
	locDateRangeDisplay = browser.CSS(".date-range-select .select-title .option-selection")
	dateRangeOptionsCSS = ".date-range-select .select-dropdown .option"

	locSummary      = browser.CSS(".summary-stat-container")
	locTroubleTable = browser.CSS(".trouble-spots-table")

	locUserMenu = browser.CSS("#user-nav-wrapper > .display-name")
	locSignOut  = browser.XPath("//a[contains(text(),'Sign out')]")
)

type Config struct {
	Username        string
	Password        string
	Subaccount      string
	DateRangeLabel  string
	AnalyticsURL    string
	TroubleSpotsURL string
	Timeout         time.Duration
	SettleDelay     time.Duration
	StaleRetryDelay time.Duration
}

type Driver struct {
	config Config
}

func New(config Config) Driver {
	return Driver{config: config}
}

func (Driver) Platform() string {
	return "IXL"
}

// Collect runs the whole dashboard workflow on the lent session.
// Authentication and date-range failures are fatal and abort the driver;
// everything after that is per-student and recoverable.
func (d Driver) Collect(ctx context.Context, session *browser.Session) (map[string]report.EntityRecord, error) {
	ctx, span := tracer.Start(ctx, "Collect")
	defer span.End()

	if err := d.login(ctx, session); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login failed")
		return nil, fmt.Errorf("%w: %v", scrapers.ErrAuthenticationFailed, err)
	}
	if err := d.selectDateRange(ctx, session); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "date range selection failed")
		return nil, fmt.Errorf("select date range %q: %w", d.config.DateRangeLabel, err)
	}

	names, err := d.studentNames(ctx, session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "student enumeration failed")
		return nil, fmt.Errorf("enumerate students: %w", err)
	}
	slog.InfoContext(ctx, "enumerated students", "platform", d.Platform(), "count", len(names))

	records := map[string]report.EntityRecord{}
	for _, name := range names {
		record, err := d.collectStudent(ctx, session, name)
		if err != nil {
			slog.ErrorContext(ctx, "skipping student", "student", name, "err", err)
			continue
		}
		if record == nil {
			// selection exhausted its retries; already logged
			continue
		}
		records[name] = *record
	}

	d.logout(ctx, session)
	return records, nil
}

func (d Driver) login(ctx context.Context, session *browser.Session) error {
	ctx, span := tracer.Start(ctx, "login")
	defer span.End()

	if err := session.Navigate(ctx, d.config.AnalyticsURL); err != nil {
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

	// pick the parent profile, then the named subaccount
	if _, err := session.AwaitClickable(ctx, locParentAvatar, d.config.Timeout); err != nil {
		return err
	}
	if _, err := session.AwaitClickable(ctx, locAccountTitle, d.config.Timeout); err != nil {
		return err
	}
	option, err := session.AwaitOptionByText(ctx, accountOptionsCSS, d.config.Subaccount, true, d.config.Timeout)
	if err != nil {
		return fmt.Errorf("subaccount %q never appeared: %w", d.config.Subaccount, err)
	}
	if err := browser.MoveThenClick(option); err != nil {
		return fmt.Errorf("select subaccount: %w", err)
	}
	return nil
}

func (d Driver) selectDateRange(ctx context.Context, session *browser.Session) error {
	ctx, span := tracer.Start(ctx, "selectDateRange")
	defer span.End()

	if _, err := session.AwaitClickable(ctx, locDateRangeOpener, d.config.Timeout); err != nil {
		return err
	}
	option, err := session.AwaitOptionByText(ctx, dateRangeOptionsCSS, d.config.DateRangeLabel, false, d.config.Timeout)
	if err != nil {
		return err
	}
	label, terr := option.Text()
	if terr != nil {
		return fmt.Errorf("read option label: %w", terr)
	}
	if err := browser.MoveThenClick(option); err != nil {
		return err
	}
	// confirm the selection actually landed before reading anything
	return session.AwaitTextEquals(ctx, locDateRangeDisplay, textutil.Collapse(label), d.config.Timeout)
}

// studentNames opens the dropdown and reads every option's display name.
// The handles are thrown away immediately: selection causes navigation, so
// the list is re-fetched fresh for every later selection.
func (d Driver) studentNames(ctx context.Context, session *browser.Session) ([]string, error) {
	if _, err := session.AwaitPresence(ctx, locStudentDropdown, d.config.Timeout); err != nil {
		return nil, err
	}
	if _, err := session.AwaitClickable(ctx, locDropdownOpener, d.config.Timeout); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(d.config.Timeout)
	for {
		els, err := session.Elements(studentOptionsCSS)
		if err == nil && len(els) > 0 {
			var names []string
			for _, el := range els {
				if attr, aerr := el.Attribute("data-name"); aerr == nil && attr != nil && *attr != "" {
					names = append(names, textutil.Collapse(*attr))
					continue
				}
				text, terr := el.Text()
				if terr != nil {
					continue
				}
				names = append(names, textutil.Collapse(text))
			}
			// collapse the dropdown again so selection starts from a known state
			if _, err := session.AwaitClickable(ctx, locDropdownOpener, d.config.Timeout); err != nil {
				return nil, err
			}
			return names, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("student options never appeared: %w", browser.ErrElementNotFound)
		}
		if err := sleepSettle(ctx, enumeratePoll); err != nil {
			return nil, err
		}
	}
}

func (d Driver) collectStudent(ctx context.Context, session *browser.Session, name string) (*report.EntityRecord, error) {
	ctx, span := tracer.Start(ctx, "collectStudent")
	defer span.End()

	ok, err := d.selectStudent(ctx, session, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "selection failed")
		return nil, err
	}
	if !ok {
		slog.WarnContext(ctx, "selection kept going stale, skipping student",
			"student", name, "attempts", selectStudentAttempts)
		return nil, nil
	}

	summary, err := d.extractSummary(ctx, session)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "summary extraction failed")
		return nil, err
	}
	slog.InfoContext(ctx, "extracted summary", "student", name, "summary", summary)

	record := &report.EntityRecord{Name: name, SummaryStats: summary}
	if !NeedsDetail(summary) {
		return record, nil
	}

	table, err := d.extractDetail(ctx, session, name)
	if err != nil {
		// a broken detail page should not cost us the summary
		slog.WarnContext(ctx, "detail extraction failed", "student", name, "err", err)
	} else {
		record.ProgressTable = table
	}
	// the detail view navigated away; put the dashboard back for the
	// next student's selection
	if err := session.Navigate(ctx, d.config.AnalyticsURL); err != nil {
		return nil, err
	}
	return record, nil
}

// selectStudent re-opens the dropdown, scans the freshly fetched options
// for an exact name match, clicks it and confirms the selection took
// effect. Stale references are retried with a fixed delay; exhaustion
// means skip, not abort.
func (d Driver) selectStudent(ctx context.Context, session *browser.Session, name string) (bool, error) {
	return browser.RetryStale(selectStudentAttempts, d.config.StaleRetryDelay, func() error {
		if _, err := session.AwaitClickable(ctx, locDropdownOpener, d.config.Timeout); err != nil {
			return err
		}
		option, err := session.AwaitOptionByText(ctx, studentOptionsCSS, name, true, d.config.Timeout)
		if err != nil {
			return err
		}
		if err := browser.MoveThenClick(option); err != nil {
			return err
		}
		return session.AwaitTextEquals(ctx, locSelectionDisplay, name, d.config.Timeout)
	})
}

// NeedsDetail reports whether a summary indicates any activity at all.
// The comparison is case-insensitive on the collapsed form.
func NeedsDetail(summary string) bool {
	return textutil.NormalizeSummary(summary) != ZeroActivitySummary
}

func (d Driver) extractSummary(ctx context.Context, session *browser.Session) (string, error) {
	// the dashboard re-renders client-side with no reliable loaded
	// signal; the settle delay approximates one
	if err := sleepSettle(ctx, d.config.SettleDelay); err != nil {
		return "", err
	}
	el, err := session.AwaitPresence(ctx, locSummary, d.config.Timeout)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("read summary: %w", err)
	}
	return textutil.NormalizeSummary(text), nil
}

func (d Driver) extractDetail(ctx context.Context, session *browser.Session, name string) (string, error) {
	ctx, span := tracer.Start(ctx, "extractDetail")
	defer span.End()

	if err := session.Navigate(ctx, d.config.TroubleSpotsURL); err != nil {
		return "", err
	}
	el, err := session.AwaitPresence(ctx, locTroubleTable, d.config.Timeout)
	if err != nil {
		return "", err
	}
	raw, err := el.HTML()
	if err != nil {
		return "", fmt.Errorf("capture table markup: %w", err)
	}

	logTroubleSpots(ctx, name, raw)
	return renderDetail(raw)
}

func (d Driver) logout(ctx context.Context, session *browser.Session) {
	// best effort; a failed logout is worth a log line, nothing more
	if _, err := session.AwaitClickable(ctx, locUserMenu, d.config.Timeout); err != nil {
		slog.DebugContext(ctx, "logout menu not reachable", "err", err)
		return
	}
	if _, err := session.AwaitClickable(ctx, locSignOut, d.config.Timeout); err != nil {
		slog.DebugContext(ctx, "sign out link not reachable", "err", err)
	}
}

func sleepSettle(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
