package browser

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

type Options struct {
	Headless      bool
	ScreenshotDir string
}

// Session owns one launched browser and its single active page. The
// top-level run owns the session and lends it to each platform driver in
// turn; only the owner calls Close.
type Session struct {
	launcher      *launcher.Launcher
	browser       *rod.Browser
	page          *rod.Page
	screenshotDir string
}

func NewSession(ctx context.Context, opts Options) (*Session, error) {
	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage")

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	// Both target sites gate content behind logins that are picky about
	// obvious automation, hence the stealth page.
	page, err := stealth.Page(b)
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("create page: %w", err)
	}
	err = page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:  1920,
		Height: 1080,
	})
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, fmt.Errorf("set viewport: %w", err)
	}

	dir := opts.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	return &Session{
		launcher:      l,
		browser:       b,
		page:          page,
		screenshotDir: dir,
	}, nil
}

func (s *Session) Page() *rod.Page {
	return s.page
}

// Navigate loads url and waits for the load event. A load-event timeout is
// only logged: many dashboard pages never settle but are still usable.
func (s *Session) Navigate(ctx context.Context, url string) error {
	page := s.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		slog.WarnContext(ctx, "wait load timed out", "url", url, "err", err)
	}
	return nil
}

func (s *Session) CurrentURL() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

// Close releases the browser and the launcher's temp state. Safe to call
// on a nil session so teardown paths don't have to branch.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			slog.Warn("failed to close browser", "err", err)
		}
	}
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
}
