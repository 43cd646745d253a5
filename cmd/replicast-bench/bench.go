package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"m7s.live/replicast"
	"m7s.live/replicast/bus"
	"m7s.live/replicast/common"
	"m7s.live/replicast/log"
	"m7s.live/replicast/metrics"
	"m7s.live/replicast/util"
)

type result struct {
	Elapsed   time.Duration
	Published int
	Delivered int
	Fallbacks int64 // try mode publishes that had to wait
	Channel   common.Stats
}

// run drives one bench round: writers publish ops concurrently while each
// reader keeps a tally, catching up at most Batch messages per Interval.
// Every reader's tally is verified once all writers are done.
func run(ctx context.Context, conf *Config, collector *metrics.Collector) (*result, error) {
	w, err := replicast.NewWriterFromConfig[op](conf.Channel)
	if err != nil {
		return nil, err
	}
	name := w.Channel().Name()
	collector.Register(name, w)
	defer collector.Unregister(name)

	b := conf.Bench
	readers := make([]*replicast.Reader[op, *tally], b.Readers)
	for i := range readers {
		readers[i] = replicast.AddReader(w, newTally(b.Writers))
	}
	logger := log.With(zap.String("channel", name))
	logger.Info("bench start", zap.Int("writers", b.Writers), zap.Int("readers", b.Readers), zap.Int("messages", b.Messages), zap.String("mode", b.Mode))

	var fallbacks atomic.Int64
	start := time.Now()
	writers, wctx := errgroup.WithContext(ctx)
	for i := 0; i < b.Writers; i++ {
		pub, id := w.Clone(), i
		writers.Go(func() error {
			return publish(wctx, pub, id, &b, &fallbacks)
		})
	}
	finished := make(chan struct{})
	var werr error
	go func() {
		werr = writers.Wait()
		close(finished)
	}()

	var g errgroup.Group
	for _, r := range readers {
		r := r
		g.Go(func() error {
			return consume(ctx, r, &b, finished)
		})
	}
	rerr := g.Wait()
	<-finished
	res := &result{
		Elapsed:   time.Since(start),
		Published: b.Writers * b.Messages,
		Fallbacks: fallbacks.Load(),
		Channel:   w.Stats(),
	}
	if werr != nil {
		return res, werr
	}
	if rerr != nil {
		return res, rerr
	}
	res.Delivered = res.Published * b.Readers
	logger.Info("bench done", zap.Duration("elapsed", res.Elapsed), zap.Uint64("blocked", res.Channel.Blocked))
	return res, nil
}

func publish(ctx context.Context, w *replicast.Writer[op], id int, b *Bench, fallbacks *atomic.Int64) error {
	var limiter *rate.Limiter
	if b.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(b.Rate), 1)
	}
	for seq := 0; seq < b.Messages; seq++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
		}
		msg := op{Writer: id, Seq: seq}
		if b.Mode == ModeTry {
			err := util.Retry(b.Retries, b.RetrySleep, func() error {
				return w.TryPublish(msg)
			})
			if err == nil {
				continue
			}
			if !errors.Is(err, bus.ErrFull) {
				return err
			}
			fallbacks.Add(1)
		}
		if err := w.PublishContext(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func consume(ctx context.Context, r *replicast.Reader[op, *tally], b *Bench, finished <-chan struct{}) error {
	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()
	for {
		if err := ctx.Err(); err != nil {
			r.Close()
			return err
		}
		select {
		case <-ticker.C:
			if n := r.UpdateLimited(b.Batch); n > 0 {
				log.Tracef("reader %s applied %d, %d pending", r.ID(), n, r.Pending())
			}
		case <-finished:
			id := r.ID()
			if err := r.IntoFresh().Verify(b.Messages); err != nil {
				return fmt.Errorf("reader %s: %w", id, err)
			}
			return nil
		case <-ctx.Done():
		}
	}
}
