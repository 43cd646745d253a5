package bus

import "errors"

var (
	ErrInvalidCapacity = errors.New("channel capacity must be positive")
	ErrFull            = errors.New("channel is full")
)

// BackpressureError is returned by TryPublish when the slowest reader is a
// full buffer behind. It hands the undelivered message back to the caller.
type BackpressureError[M any] struct {
	Message M
}

func (e *BackpressureError[M]) Error() string {
	return ErrFull.Error()
}

func (e *BackpressureError[M]) Unwrap() error {
	return ErrFull
}
