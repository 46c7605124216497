package usecase

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
)

// DefaultReconcileInterval is how often the tracked set is re-derived from
// the repository.
const DefaultReconcileInterval = 10 * time.Minute

// FlightUpdater keeps one poll loop running per currently trackable flight.
// On every tick it re-derives the active set from the repository and
// starts or cancels pollers to match. The poller registry is only ever
// touched from the Run goroutine.
type FlightUpdater struct {
	flightRepo repository.FlightRepository
	provider   repository.FlightProvider
	notifier   repository.Notifier
	builder    *NotificationBuilder
	metrics    *metrics.Metrics
	logger     logger.Logger

	interval time.Duration
	clock    func() time.Time
	pollers  map[string]*flightPoller
}

// NewFlightUpdater creates a new flight updater. metrics may be nil.
func NewFlightUpdater(
	flightRepo repository.FlightRepository,
	provider repository.FlightProvider,
	notifier repository.Notifier,
	builder *NotificationBuilder,
	m *metrics.Metrics,
	log logger.Logger,
	interval time.Duration,
) *FlightUpdater {
	if interval <= 0 {
		interval = DefaultReconcileInterval
	}
	return &FlightUpdater{
		flightRepo: flightRepo,
		provider:   provider,
		notifier:   notifier,
		builder:    builder,
		metrics:    m,
		logger:     log,
		interval:   interval,
		clock:      time.Now,
		pollers:    make(map[string]*flightPoller),
	}
}

// Run reconciles once immediately, then on a fixed cadence until ctx is
// cancelled. On shutdown every poller is cancelled.
func (u *FlightUpdater) Run(ctx context.Context) {
	u.logger.Info("Flight updater starting", "reconcileInterval", u.interval.String())
	u.reconcile(ctx)

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			u.stopAll()
			u.logger.Info("Flight updater stopped")
			return
		case <-ticker.C:
			u.reconcile(ctx)
		}
	}
}

// reconcile aligns the poller registry with the repository's active set.
// A query failure skips the tick and leaves the registry untouched; the
// next tick retries.
func (u *FlightUpdater) reconcile(ctx context.Context) {
	flights, err := u.flightRepo.FindActive(ctx, u.clock())
	if err != nil {
		u.logger.Error("Active-flight query failed, skipping tick", "error", err)
		if u.metrics != nil {
			u.metrics.PollErrors.WithLabelValues("reconcile_query").Inc()
		}
		return
	}

	active := make(map[string]bool, len(flights))
	for _, flight := range flights {
		active[flight.ID] = true
	}

	for id, poller := range u.pollers {
		if !active[id] {
			poller.stop()
			delete(u.pollers, id)
			u.logger.Info("Stopped tracking flight", "flight", poller.ident, "flightId", id)
		}
	}

	for _, flight := range flights {
		if _, tracked := u.pollers[flight.ID]; tracked {
			continue
		}
		poller := newFlightPoller(flight, u)
		pollerCtx, cancel := context.WithCancel(ctx)
		poller.cancel = cancel
		u.pollers[flight.ID] = poller
		go poller.run(pollerCtx)
		u.logger.Info("Started tracking flight", "flight", flight.Ident, "flightId", flight.ID,
			"phase", PhaseOf(flight, u.clock()).String())
	}

	if u.metrics != nil {
		u.metrics.FlightsTracked.Set(float64(len(u.pollers)))
	}
	u.logger.Info("Reconciled flight pollers", "tracked", len(u.pollers))
}

func (u *FlightUpdater) stopAll() {
	for id, poller := range u.pollers {
		poller.stop()
		delete(u.pollers, id)
	}
}
