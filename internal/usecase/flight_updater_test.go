package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileStartsPollersForActiveFlights(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a := scheduledFlight(now, 3*time.Hour, 5*time.Hour)
	a.ID = "a"
	b := scheduledFlight(now, 30*time.Minute, 2*time.Hour)
	b.ID = "b"
	repo := newFakeFlightRepo(a, b)
	provider := &fakeProvider{result: a}
	u := newTestUpdater(repo, provider, &fakeNotifier{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	u.reconcile(ctx)

	assert.Len(t, u.pollers, 2)
	assert.Contains(t, u.pollers, "a")
	assert.Contains(t, u.pollers, "b")
}

func TestReconcileIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a := scheduledFlight(now, 3*time.Hour, 5*time.Hour)
	a.ID = "a"
	repo := newFakeFlightRepo(a)
	provider := &fakeProvider{result: a}
	u := newTestUpdater(repo, provider, &fakeNotifier{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	u.reconcile(ctx)
	require.Len(t, u.pollers, 1)
	first := u.pollers["a"]

	// No underlying data change: the second pass must not churn the
	// registry.
	u.reconcile(ctx)
	assert.Len(t, u.pollers, 1)
	assert.Same(t, first, u.pollers["a"])
}

func TestReconcileCancelsPollersOutsideWindow(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a := scheduledFlight(now, 3*time.Hour, 5*time.Hour)
	a.ID = "a"
	b := scheduledFlight(now, 30*time.Minute, 2*time.Hour)
	b.ID = "b"
	repo := newFakeFlightRepo(a, b)
	provider := &fakeProvider{result: a}
	u := newTestUpdater(repo, provider, &fakeNotifier{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	u.reconcile(ctx)
	require.Len(t, u.pollers, 2)
	removed := u.pollers["b"]

	repo.remove("b")
	u.reconcile(ctx)

	assert.Len(t, u.pollers, 1)
	assert.NotContains(t, u.pollers, "b")
	select {
	case <-removed.done:
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled poller did not stop")
	}
}

func TestReconcileQueryFailureLeavesRegistryUnchanged(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a := scheduledFlight(now, 3*time.Hour, 5*time.Hour)
	a.ID = "a"
	repo := newFakeFlightRepo(a)
	provider := &fakeProvider{result: a}
	u := newTestUpdater(repo, provider, &fakeNotifier{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	u.reconcile(ctx)
	require.Len(t, u.pollers, 1)
	existing := u.pollers["a"]

	repo.mu.Lock()
	repo.findActiveErr = errors.New("mongo timeout")
	repo.mu.Unlock()
	u.reconcile(ctx)

	assert.Len(t, u.pollers, 1)
	assert.Same(t, existing, u.pollers["a"])

	// The next healthy tick proceeds normally.
	repo.mu.Lock()
	repo.findActiveErr = nil
	repo.mu.Unlock()
	u.reconcile(ctx)
	assert.Len(t, u.pollers, 1)
}

func TestReconcileExcludesTerminalFlights(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a := scheduledFlight(now, 3*time.Hour, 5*time.Hour)
	a.ID = "a"
	done := scheduledFlight(now, -time.Hour, 2*time.Hour)
	done.ID = "done"
	done.ActualIn = timePtr(now.Add(-5 * time.Minute))
	cancelled := scheduledFlight(now, time.Hour, 2*time.Hour)
	cancelled.ID = "cancelled"
	cancelled.Cancelled = true
	repo := newFakeFlightRepo(a, done, cancelled)
	provider := &fakeProvider{result: a}
	u := newTestUpdater(repo, provider, &fakeNotifier{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	u.reconcile(ctx)

	assert.Len(t, u.pollers, 1)
	assert.Contains(t, u.pollers, "a")
}

func TestRunShutdownStopsAllPollers(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	a := scheduledFlight(now, 3*time.Hour, 5*time.Hour)
	a.ID = "a"
	repo := newFakeFlightRepo(a)
	provider := &fakeProvider{result: a}
	u := newTestUpdater(repo, provider, &fakeNotifier{}, now)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		u.Run(ctx)
		close(stopped)
	}()

	require.Eventually(t, func() bool {
		return repo.activeCallCount() > 0
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("updater did not stop on context cancellation")
	}
	assert.Empty(t, u.pollers)
}
