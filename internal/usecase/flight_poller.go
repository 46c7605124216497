package usecase

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
	"flightwatch-service/pkg/metrics"
)

// flightPoller owns the adaptive timer for exactly one flight. Cycles run
// strictly sequentially on a single goroutine; the next cycle is armed
// only after the current one finishes, and the poller's context is checked
// immediately before every reschedule so a cancelled poller can finish its
// in-flight cycle but never arm another.
type flightPoller struct {
	flightID string
	ident    string

	flightRepo repository.FlightRepository
	provider   repository.FlightProvider
	notifier   repository.Notifier
	builder    *NotificationBuilder
	metrics    *metrics.Metrics
	logger     logger.Logger
	clock      func() time.Time

	// last successfully read snapshot, used as the backoff baseline when
	// the repository itself is unreachable.
	last *entity.Flight

	cancel context.CancelFunc
	done   chan struct{}
}

func newFlightPoller(flight *entity.Flight, u *FlightUpdater) *flightPoller {
	return &flightPoller{
		flightID:   flight.ID,
		ident:      flight.Ident,
		flightRepo: u.flightRepo,
		provider:   u.provider,
		notifier:   u.notifier,
		builder:    u.builder,
		metrics:    u.metrics,
		logger:     u.logger.With("flight", flight.Ident, "flightId", flight.ID),
		clock:      u.clock,
		last:       flight,
		done:       make(chan struct{}),
	}
}

// run performs one immediate cycle, then keeps rescheduling at the
// phase-derived interval until the flight turns terminal or ctx is
// cancelled.
func (p *flightPoller) run(ctx context.Context) {
	defer close(p.done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		next, terminal := p.runCycle(ctx)
		if terminal {
			p.logger.Info("Flight reached terminal state, polling stopped")
			return
		}
		if ctx.Err() != nil {
			return
		}
		timer.Reset(next)
	}
}

// stop requests cancellation. The current cycle, if any, is allowed to
// complete but will not reschedule.
func (p *flightPoller) stop() {
	if p.cancel != nil {
		p.cancel()
	}
}

// runCycle executes one fetch-and-update cycle and returns the delay until
// the next one, or terminal=true when the poller must stop for good.
func (p *flightPoller) runCycle(ctx context.Context) (next time.Duration, terminal bool) {
	started := p.clock()
	defer func() {
		if p.metrics != nil {
			p.metrics.PollsTotal.Inc()
			p.metrics.PollCycleTime.Observe(p.clock().Sub(started).Seconds())
		}
	}()

	flight, err := p.flightRepo.FindByID(ctx, p.flightID)
	if err != nil {
		p.logger.Error("Failed to re-read flight, backing off", "error", err)
		p.countError("repository_read")
		return p.backoff(p.last), false
	}
	if flight == nil || flight.IsTerminal() {
		return 0, true
	}
	p.last = flight

	fetched, err := p.provider.FetchFlightInfo(ctx, flight.FAFlightID)
	if err != nil {
		// Single doubling of the baseline interval per failure; a string of
		// failures keeps flapping at 2x, it does not compound.
		p.logger.Error("Provider fetch failed, backing off", "error", err)
		p.countError("provider_fetch")
		return p.backoff(flight), false
	}

	changes := DetectChanges(flight, fetched)

	updated, err := p.flightRepo.UpdateFields(ctx, p.flightID, entity.UpdateFrom(fetched))
	if err != nil {
		p.logger.Error("Failed to persist flight update, backing off", "error", err)
		p.countError("repository_update")
		return p.backoff(flight), false
	}
	p.last = updated

	if len(changes) > 0 {
		p.notify(ctx, updated, changes)
	}

	if updated.IsTerminal() {
		return 0, true
	}

	now := p.clock()
	phase := PhaseOf(updated, now)
	interval := PollInterval(updated, now)
	p.logger.Debug("Cycle complete", "phase", phase.String(), "nextPoll", interval.String(), "changes", len(changes))
	return interval, false
}

func (p *flightPoller) notify(ctx context.Context, flight *entity.Flight, changes []entity.FlightChange) {
	if p.metrics != nil {
		for _, change := range changes {
			p.metrics.ChangesDetected.WithLabelValues(string(change.Type)).Inc()
		}
	}

	text := p.builder.Compose(ctx, flight, changes)
	if err := p.notifier.PostMessage(ctx, flight.ChannelID, text); err != nil {
		p.logger.Error("Failed to post notification", "channel", flight.ChannelID, "error", err)
		p.countError("notify")
		return
	}
	if p.metrics != nil {
		p.metrics.NotificationsSent.Inc()
	}
	p.logger.Info("Notification sent", "channel", flight.ChannelID, "changes", len(changes))
}

// backoff doubles the baseline phase interval. Applied fresh on every
// failure, relative to the baseline, so consecutive failures never grow
// beyond 2x.
func (p *flightPoller) backoff(flight *entity.Flight) time.Duration {
	return 2 * PollInterval(flight, p.clock())
}

func (p *flightPoller) countError(operation string) {
	if p.metrics != nil {
		p.metrics.PollErrors.WithLabelValues(operation).Inc()
	}
}
