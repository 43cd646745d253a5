package util

import (
	"errors"
	"math/rand"
	"time"
)

// Retry calls f until it succeeds, attempts run out, or f returns an error
// wrapped by RetryStopErr. The sleep between attempts doubles each round with
// up to half of it added as jitter.
func Retry(attempts int, sleep time.Duration, f func() error) error {
	if err := f(); err != nil {
		var s retryStop
		if errors.As(err, &s) {
			// Return the original error for later checking
			return s.error
		}

		if attempts--; attempts > 0 {
			// Add some randomness to prevent creating a Thundering Herd
			if sleep > 0 {
				jitter := time.Duration(rand.Int63n(int64(sleep)))
				sleep = sleep + jitter/2
			}

			time.Sleep(sleep)
			return Retry(attempts, 2*sleep, f)
		}
		return err
	}

	return nil
}

type retryStop struct {
	error
}

func (s retryStop) Unwrap() error {
	return s.error
}

func RetryStopErr(err error) error {
	return retryStop{err}
}
