package browser

import "time"

// RetryStale runs fn up to attempts times, sleeping delay between tries,
// retrying only when the failure is a stale-reference condition. Returns
// (true, nil) on success, (false, nil) when every attempt went stale
// (callers downgrade that to a skip, not a crash), and (false, err) as
// soon as fn fails for any other reason.
func RetryStale(attempts int, delay time.Duration, fn func() error) (bool, error) {
	for i := 0; i < attempts; i++ {
		err := fn()
		if err == nil {
			return true, nil
		}
		if !IsStale(err) {
			return false, err
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return false, nil
}
