// Package reporter owns one report run: it acquires the browser session,
// lends it to each platform driver in turn, aggregates their records and
// hands the rendered document to the notifier.
package reporter

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"studyreport/lib/browser"
	"studyreport/lib/notify"
	"studyreport/lib/report"
	"studyreport/lib/telemetry"
	"studyreport/lib/timezone"
)

var tracer = telemetry.Tracer("studyreport.services.reporter")

// Driver is one platform's workflow. Collect borrows the session, never
// keeps it, and returns whatever records it managed to extract.
type Driver interface {
	Platform() string
	Collect(ctx context.Context, session *browser.Session) (map[string]report.EntityRecord, error)
}

type Options struct {
	Drivers    []Driver
	Notifier   notify.Notifier
	Recipients []string
	SendEmail  bool
	Browser    browser.Options
	// ReportDir is where the rendered document is saved when delivery is
	// off or unavailable, so a run's outcome is never lost.
	ReportDir string
}

type Service struct {
	options Options
	acquire func(ctx context.Context) (*browser.Session, error)
}

func New(options Options) Service {
	return Service{
		options: options,
		acquire: func(ctx context.Context) (*browser.Session, error) {
			return browser.NewSession(ctx, options.Browser)
		},
	}
}

// Run executes the whole pipeline. The drivers run strictly sequentially
// on the shared session. A platform's fatal failure is caught here so the
// other platform and the email step still happen; the session release and
// the completion marker are unconditional.
func (s Service) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()
	defer slog.InfoContext(ctx, "report run complete")

	session, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	results := map[string]map[string]report.EntityRecord{}
	for _, driver := range s.options.Drivers {
		records, err := driver.Collect(ctx, session)
		if err != nil {
			slog.ErrorContext(ctx, "platform driver failed",
				"platform", driver.Platform(), "err", err)
		}
		if len(records) > 0 {
			// keep partial results even when the driver errored out
			results[driver.Platform()] = records
		}
	}

	aggregated := report.Aggregate(results)
	document := report.Render(aggregated)
	subject := report.Subject(timezone.Now())

	if !s.options.SendEmail {
		slog.InfoContext(ctx, "email delivery disabled, saving report to disk")
		s.saveReport(ctx, document)
		return nil
	}
	if err := s.options.Notifier.Send(ctx, subject, document, s.options.Recipients); err != nil {
		// delivery problems never fail the run
		slog.WarnContext(ctx, "report generated but not delivered", "err", err)
		s.saveReport(ctx, document)
	}
	return nil
}

func (s Service) saveReport(ctx context.Context, document string) {
	dir := s.options.ReportDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, "report.html")
	if err := os.WriteFile(path, []byte(document), 0o644); err != nil {
		slog.ErrorContext(ctx, "failed to save report", "path", path, "err", err)
		return
	}
	slog.InfoContext(ctx, "report saved", "path", path)
}
