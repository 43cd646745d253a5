package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	errBusy := errors.New("busy")

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := Retry(5, 0, func() error {
			if calls++; calls < 3 {
				return errBusy
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		err := Retry(3, 0, func() error {
			calls++
			return errBusy
		})
		assert.ErrorIs(t, err, errBusy)
		assert.Equal(t, 3, calls)
	})

	t.Run("stop", func(t *testing.T) {
		calls := 0
		err := Retry(5, 0, func() error {
			calls++
			return RetryStopErr(errBusy)
		})
		assert.Same(t, errBusy, err)
		assert.Equal(t, 1, calls)
	})
}
