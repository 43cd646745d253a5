package replicast

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"m7s.live/replicast/bus"
	"m7s.live/replicast/common"
	"m7s.live/replicast/config"
	"m7s.live/replicast/log"
)

// Writer publishes to one channel. Clones share the channel; any number of
// them may publish concurrently.
type Writer[M any] struct {
	id uuid.UUID
	ch *bus.Channel[M]
}

// NewWriter creates a channel holding up to capacity unread messages per
// reader and returns its first writer.
func NewWriter[M any](capacity int, opts ...bus.Option) (*Writer[M], error) {
	ch, err := bus.New[M](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &Writer[M]{id: uuid.New(), ch: ch}, nil
}

func NewWriterFromConfig[M any](cfg config.Channel) (*Writer[M], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := []bus.Option{bus.WithLogger(log.With(zap.String("component", "replicast")))}
	if cfg.Name != "" {
		opts = append(opts, bus.WithName(cfg.Name))
	}
	return NewWriter[M](cfg.Capacity, opts...)
}

// Clone returns a new writer on the same channel.
func (w *Writer[M]) Clone() *Writer[M] {
	return &Writer[M]{id: uuid.New(), ch: w.ch}
}

func (w *Writer[M]) ID() string {
	return w.id.String()
}

// Channel exposes the underlying channel, mainly for metrics registration.
func (w *Writer[M]) Channel() *bus.Channel[M] {
	return w.ch
}

// Publish broadcasts msg, waiting while the slowest reader is a full buffer
// behind.
func (w *Writer[M]) Publish(msg M) {
	w.ch.Publish(msg)
}

func (w *Writer[M]) PublishContext(ctx context.Context, msg M) error {
	return w.ch.PublishContext(ctx, msg)
}

// TryPublish broadcasts msg if there is room. Otherwise it returns a
// *bus.BackpressureError carrying msg back.
func (w *Writer[M]) TryPublish(msg M) error {
	return w.ch.TryPublish(msg)
}

func (w *Writer[M]) Stats() common.Stats {
	return w.ch.Stats()
}
