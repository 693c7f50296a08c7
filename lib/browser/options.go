package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"studyreport/lib/textutil"
)

// Elements runs a fresh query for every element matching the css selector.
// No sleeping: an empty result just comes back empty, callers poll.
func (s *Session) Elements(selector string) (rod.Elements, error) {
	return s.page.Sleeper(rod.NotFoundSleeper).Elements(selector)
}

// MoveThenClick hovers over el before clicking it, the same gesture
// AwaitClickable performs, for elements obtained by enumeration.
func MoveThenClick(el *rod.Element) error {
	if err := el.Hover(); err != nil {
		return fmt.Errorf("hover: %w", err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click: %w", err)
	}
	return nil
}

// AwaitOptionByText polls a dropdown's option list until one option's
// collapsed text matches. With exact set the match is string equality,
// otherwise substring containment (how the date-range options are picked).
// The option list is re-queried on every poll; handles from a previous
// cycle are never reused, since selection-triggered navigation invalidates
// them.
func (s *Session) AwaitOptionByText(ctx context.Context, listSelector, text string, exact bool, timeout time.Duration) (*rod.Element, error) {
	want := textutil.Collapse(text)
	loc := CSS(listSelector)
	deadline := time.Now().Add(timeout)
	for {
		els, err := s.Elements(listSelector)
		if err == nil {
			for _, el := range els {
				optText, terr := el.Text()
				if terr != nil {
					continue
				}
				optText = textutil.Collapse(optText)
				if (exact && optText == want) || (!exact && strings.Contains(optText, want)) {
					return el, nil
				}
			}
		}
		if time.Now().After(deadline) {
			s.captureFailure(ctx, loc)
			return nil, fmt.Errorf("%s: no option matching %q: %w", loc, text, ErrElementNotFound)
		}
		if err := sleepCtx(ctx, pollInterval); err != nil {
			return nil, err
		}
	}
}
