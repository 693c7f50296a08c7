package browser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"studyreport/lib/textutil"
)

// pollInterval is how often a bounded wait re-queries the DOM. Every query
// is fresh: element handles are never cached across a poll, which is what
// keeps staleness out of this layer.
const pollInterval = 250 * time.Millisecond

func (s *Session) find(loc Locator) (*rod.Element, error) {
	page := s.page.Sleeper(rod.NotFoundSleeper)
	switch loc.By {
	case ByXPath:
		return page.ElementX(loc.Value)
	default:
		return page.Element(loc.Value)
	}
}

// AwaitPresence blocks until an element matching loc exists in the DOM or
// timeout elapses. On timeout it captures a diagnostic screenshot named
// from the locator before failing: headless runs have no interactive
// debugging, so the screenshot is the only record of what the page looked
// like.
func (s *Session) AwaitPresence(ctx context.Context, loc Locator, timeout time.Duration) (*rod.Element, error) {
	deadline := time.Now().Add(timeout)
	for {
		el, err := s.find(loc)
		if err == nil {
			return el, nil
		}
		if time.Now().After(deadline) {
			s.captureFailure(ctx, loc)
			return nil, fmt.Errorf("%s: %w", loc, ErrElementNotFound)
		}
		if err := sleepCtx(ctx, pollInterval); err != nil {
			return nil, err
		}
	}
}

// AwaitClickable blocks until an element matching loc is present and
// interactable, then performs a move-then-click gesture. Hovering first
// mirrors real pointer input and dodges overlay-interception failures
// that a bare programmatic click runs into.
func (s *Session) AwaitClickable(ctx context.Context, loc Locator, timeout time.Duration) (*rod.Element, error) {
	deadline := time.Now().Add(timeout)
	for {
		el, err := s.find(loc)
		if err == nil {
			if _, ierr := el.Interactable(); ierr == nil {
				if herr := el.Hover(); herr != nil {
					return nil, fmt.Errorf("%s: hover: %w", loc, herr)
				}
				if cerr := el.Click(proto.InputMouseButtonLeft, 1); cerr != nil {
					return nil, fmt.Errorf("%s: click: %w", loc, cerr)
				}
				return el, nil
			}
		}
		if time.Now().After(deadline) {
			s.captureFailure(ctx, loc)
			return nil, fmt.Errorf("%s: %w", loc, ErrElementNotClickable)
		}
		if err := sleepCtx(ctx, pollInterval); err != nil {
			return nil, err
		}
	}
}

// AwaitTextEquals blocks until the collapsed text of the element matching
// loc equals want. Used to confirm that a selection actually took effect
// before reading anything that depends on it.
func (s *Session) AwaitTextEquals(ctx context.Context, loc Locator, want string, timeout time.Duration) error {
	want = textutil.Collapse(want)
	deadline := time.Now().Add(timeout)
	for {
		el, err := s.find(loc)
		if err == nil {
			text, terr := el.Text()
			if terr == nil && textutil.Collapse(text) == want {
				return nil
			}
		}
		if time.Now().After(deadline) {
			s.captureFailure(ctx, loc)
			return fmt.Errorf("%s: text never became %q: %w", loc, want, ErrElementNotFound)
		}
		if err := sleepCtx(ctx, pollInterval); err != nil {
			return err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// ScreenshotName derives a deterministic, filesystem-safe file name from
// the failing locator or step name.
func ScreenshotName(step string) string {
	var b strings.Builder
	for _, c := range step {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	if len(name) > 80 {
		name = name[:80]
	}
	if name == "" {
		name = "failure"
	}
	return name + ".png"
}

func (s *Session) captureFailure(ctx context.Context, loc Locator) {
	name := ScreenshotName(loc.Value)
	shot, err := s.page.Screenshot(false, nil)
	if err != nil {
		slog.ErrorContext(ctx, "failed to capture failure screenshot", "locator", loc.String(), "err", err)
		return
	}
	path := filepath.Join(s.screenshotDir, name)
	if err := os.WriteFile(path, shot, 0o644); err != nil {
		slog.ErrorContext(ctx, "failed to write failure screenshot", "path", path, "err", err)
		return
	}
	slog.WarnContext(ctx, "interaction failed, screenshot captured", "locator", loc.String(), "path", path)
}
