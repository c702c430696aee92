package worker

import (
	"context"
	"time"

	"github.com/wanderstone-dev/wanderstone/pkg/utils/logging"
)

// SessionPruner discards intake sessions that have been idle too long
type SessionPruner interface {
	PruneExpired(ctx context.Context, idleFor time.Duration) int
}

// SessionSweeper periodically prunes abandoned intake sessions so a
// user who walked away mid-registration does not hold a session forever.
//
// Single server instance assumed; sessions are in-process state.
type SessionSweeper struct {
	pruner   SessionPruner
	interval time.Duration
	maxIdle  time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionSweeper creates a sweeper that prunes sessions idle for
// longer than maxIdle every interval
func NewSessionSweeper(pruner SessionPruner, interval, maxIdle time.Duration) *SessionSweeper {
	return &SessionSweeper{
		pruner:   pruner,
		interval: interval,
		maxIdle:  maxIdle,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop without blocking startup
func (w *SessionSweeper) Start(ctx context.Context) {
	logging.Default().Info("intake session sweeper starting",
		"interval", w.interval.String(), "maxIdle", w.maxIdle.String())

	go w.run(ctx)
}

// Stop signals the sweeper to stop and waits for completion
func (w *SessionSweeper) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("intake session sweeper stopped")
}

func (w *SessionSweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := w.pruner.PruneExpired(ctx, w.maxIdle); n > 0 {
				logging.Default().Info("pruned idle intake sessions", "count", n)
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("intake session sweeper context cancelled")
			return
		}
	}
}
