// Package scrapers holds what the platform drivers share.
//
// Both drivers follow the same discipline: the login state is the only
// implied input, every other step is (page state in) -> (records out).
// Fatal failures (authentication, scoping the view) abort that driver
// only; per-student failures are logged and skipped so one broken page
// never costs the rest of the run.
package scrapers

import "errors"

// ErrAuthenticationFailed means a login flow could not complete. Fatal to
// that platform's driver; the other platform still runs.
var ErrAuthenticationFailed = errors.New("authentication failed")
