//go:build linux

package ipset

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// sendRetry drives send until it succeeds, fails hard, or exhausts the
// transient budget. EAGAIN sleeps for interval and consumes one unit of
// the budget; EINTR retries immediately and consumes nothing. The budget
// is local to the call, so concurrent sends never starve each other.
// On give-up the last errno is returned as-is for the caller to wrap.
func sendRetry(send func() error, limit int, interval time.Duration, onRetry func()) error {
	transient := 0
	for {
		err := send()
		switch {
		case err == nil:
			return nil
		case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK):
			transient++
			if transient >= limit {
				return err
			}
			if onRetry != nil {
				onRetry()
			}
			time.Sleep(interval)
		case errors.Is(err, unix.EINTR):
			// interrupted mid-call, try again
		default:
			return err
		}
	}
}
