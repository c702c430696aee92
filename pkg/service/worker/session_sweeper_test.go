package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/wanderstone-dev/wanderstone/pkg/service/worker"
)

type mockPruner struct {
	mu     sync.Mutex
	calls  int
	pruned int
}

func (m *mockPruner) PruneExpired(ctx context.Context, idleFor time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.pruned
}

func (m *mockPruner) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestSessionSweeper(t *testing.T) {
	t.Run("prunes on every tick until stopped", func(t *testing.T) {
		pruner := &mockPruner{pruned: 2}
		sweeper := worker.NewSessionSweeper(pruner, 10*time.Millisecond, time.Hour)

		sweeper.Start(context.Background())

		deadline := time.After(2 * time.Second)
		for pruner.callCount() < 3 {
			select {
			case <-deadline:
				t.Fatal("sweeper did not tick in time")
			case <-time.After(5 * time.Millisecond):
			}
		}
		sweeper.Stop()

		after := pruner.callCount()
		time.Sleep(50 * time.Millisecond)
		gt.Value(t, pruner.callCount()).Equal(after)
	})

	t.Run("stops when context is cancelled", func(t *testing.T) {
		pruner := &mockPruner{}
		sweeper := worker.NewSessionSweeper(pruner, time.Hour, time.Hour)

		ctx, cancel := context.WithCancel(context.Background())
		sweeper.Start(ctx)
		cancel()

		done := make(chan struct{})
		go func() {
			sweeper.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("sweeper did not stop after context cancel")
		}
	})
}
