// Package watch polls the earthquake feed on a fixed interval and hands
// previously unseen events to a sink.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-feed/internal/domain"
	"github.com/couchcryptid/quake-feed/internal/observability"
)

// Fetcher runs one query for the given time window.
type Fetcher interface {
	FetchWindow(ctx context.Context, from, to time.Time) (domain.ResultSet, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, from, to time.Time) (domain.ResultSet, error)

func (f FetcherFunc) FetchWindow(ctx context.Context, from, to time.Time) (domain.ResultSet, error) {
	return f(ctx, from, to)
}

// Sink receives the new events from each poll cycle.
type Sink interface {
	Publish(ctx context.Context, events []domain.EarthquakeRecord) error
}

// Watcher orchestrates the poll-dedupe-publish loop.
type Watcher struct {
	fetcher  Fetcher
	sink     Sink
	clock    clockwork.Clock
	interval time.Duration
	lookback time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
	seen     map[string]time.Time // event ID -> event time, pruned each poll
}

// New creates a Watcher. Each poll queries the window [now-lookback, now];
// lookback should comfortably exceed interval so that events reported late by
// the feed still land in a window.
func New(f Fetcher, s Sink, clock clockwork.Clock, interval, lookback time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Watcher {
	return &Watcher{
		fetcher:  f,
		sink:     s,
		clock:    clock,
		interval: interval,
		lookback: lookback,
		logger:   logger,
		metrics:  metrics,
		seen:     make(map[string]time.Time),
	}
}

// CheckReadiness returns nil once the watcher has completed at least one poll,
// or an error describing why the service is not yet ready.
func (w *Watcher) CheckReadiness(_ context.Context) error {
	if !w.ready.Load() {
		return errors.New("watcher has not completed a poll yet")
	}
	return nil
}

// Run executes the poll loop until the context is cancelled. The first poll
// happens immediately, subsequent ones on the interval.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher started", "interval", w.interval, "lookback", w.lookback)
	w.metrics.WatcherRunning.Set(1)
	defer w.metrics.WatcherRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := initialBackoff
	maxBackoff := 5 * time.Second

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if err := w.poll(ctx); err != nil {
			if ctx.Err() != nil {
				w.logger.Info("watcher stopping", "reason", ctx.Err())
				return nil
			}
			// Retry after the backoff instead of waiting out the interval.
			if !w.backoffOrStop(ctx, &backoff, maxBackoff) {
				w.logger.Info("watcher stopping", "reason", ctx.Err())
				return nil
			}
			continue
		}
		backoff = initialBackoff

		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

const initialBackoff = 200 * time.Millisecond

// poll runs one fetch-dedupe-publish cycle.
func (w *Watcher) poll(ctx context.Context) error {
	now := w.clock.Now().UTC()
	from := now.Add(-w.lookback)

	rs, err := w.fetcher.FetchWindow(ctx, from, now)
	if err != nil {
		w.logger.Error("poll failed", "error", err)
		w.metrics.PollsTotal.WithLabelValues("error").Inc()
		return err
	}

	w.metrics.PollsTotal.WithLabelValues("success").Inc()
	w.prune(from)

	fresh := make([]domain.EarthquakeRecord, 0, len(rs.Events))
	for _, ev := range rs.Events {
		if _, ok := w.seen[ev.ID]; ok {
			continue
		}
		fresh = append(fresh, ev)
	}

	if len(fresh) > 0 {
		if err := w.sink.Publish(ctx, fresh); err != nil {
			// Not marked seen, so the next poll retries them.
			w.logger.Error("publish failed", "error", err, "events", len(fresh))
			return err
		}
		for _, ev := range fresh {
			w.seen[ev.ID] = ev.Time
		}
		w.metrics.EventsPublished.Add(float64(len(fresh)))
		w.logger.Info("events published", "new", len(fresh), "window_total", len(rs.Events))
	}

	w.ready.Store(true)
	return nil
}

// prune drops seen entries that have aged out of the poll window.
func (w *Watcher) prune(windowStart time.Time) {
	for id, ts := range w.seen {
		if ts.Before(windowStart) {
			delete(w.seen, id)
		}
	}
}

// backoffOrStop sleeps with the current backoff and doubles it. Returns false
// if the watcher should stop.
func (w *Watcher) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	timer := w.clock.NewTimer(*backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
	}

	next := *backoff * 2
	if next > maxBackoff {
		next = maxBackoff
	}
	*backoff = next
	return true
}
