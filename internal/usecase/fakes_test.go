package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/logger"
)

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}
func (nopLogger) With(...interface{}) logger.Logger { return nopLogger{} }

type fakeFlightRepo struct {
	mu            sync.Mutex
	flights       map[string]*entity.Flight
	findActiveErr error
	findByIDErr   error
	updateErr     error
	activeCalls   int
}

func newFakeFlightRepo(flights ...*entity.Flight) *fakeFlightRepo {
	repo := &fakeFlightRepo{flights: make(map[string]*entity.Flight)}
	for _, f := range flights {
		repo.flights[f.ID] = cloneFlight(f)
	}
	return repo
}

func (r *fakeFlightRepo) FindActive(ctx context.Context, now time.Time) ([]*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activeCalls++
	if r.findActiveErr != nil {
		return nil, r.findActiveErr
	}
	var active []*entity.Flight
	for _, f := range r.flights {
		if f.IsTerminal() {
			continue
		}
		if f.ScheduledOff.Before(now.Add(-4*time.Hour)) || f.ScheduledOff.After(now.Add(24*time.Hour)) {
			continue
		}
		active = append(active, cloneFlight(f))
	}
	return active, nil
}

func (r *fakeFlightRepo) FindByID(ctx context.Context, id string) (*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findByIDErr != nil {
		return nil, r.findByIDErr
	}
	f, ok := r.flights[id]
	if !ok {
		return nil, nil
	}
	return cloneFlight(f), nil
}

func (r *fakeFlightRepo) UpdateFields(ctx context.Context, id string, update entity.FlightUpdate) (*entity.Flight, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	f, ok := r.flights[id]
	if !ok {
		return nil, errors.New("flight not found")
	}
	f.Status = update.Status
	f.DepartureDelay = update.DepartureDelay
	f.ArrivalDelay = update.ArrivalDelay
	f.ActualOut = update.ActualOut
	f.ActualOff = update.ActualOff
	f.ActualOn = update.ActualOn
	f.ActualIn = update.ActualIn
	f.Cancelled = update.Cancelled
	f.Diverted = update.Diverted
	f.GateOrigin = update.GateOrigin
	f.ProgressPercent = update.ProgressPercent
	f.UpdatedAt = time.Now()
	return cloneFlight(f), nil
}

func (r *fakeFlightRepo) Insert(ctx context.Context, flight *entity.Flight) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.flights[flight.ID] = cloneFlight(flight)
	return nil
}

func (r *fakeFlightRepo) NextTrackingSeq(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, f := range r.flights {
		if f.TrackingSeq > max {
			max = f.TrackingSeq
		}
	}
	return max + 1, nil
}

func (r *fakeFlightRepo) activeCallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeCalls
}

func (r *fakeFlightRepo) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.flights, id)
}

type fakeProvider struct {
	mu     sync.Mutex
	result *entity.Flight
	err    error
	calls  int
}

func (p *fakeProvider) FetchFlightInfo(ctx context.Context, faFlightID string) (*entity.Flight, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if p.result != nil {
		return cloneFlight(p.result), nil
	}
	return nil, errors.New("no result configured")
}

type fakeNotifier struct {
	mu       sync.Mutex
	err      error
	channels []string
	messages []string
}

func (n *fakeNotifier) PostMessage(ctx context.Context, channelID, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.channels = append(n.channels, channelID)
	n.messages = append(n.messages, text)
	return nil
}

func (n *fakeNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type fakeAirportRepo struct {
	airports map[string]*entity.Airport
}

func (r *fakeAirportRepo) GetByIata(ctx context.Context, code string) (*entity.Airport, error) {
	a, ok := r.airports[code]
	if !ok {
		return nil, errors.New("airport not found")
	}
	return a, nil
}

type fakePositions struct {
	state *entity.LivePosition
	err   error
}

func (p *fakePositions) FlightState(ctx context.Context, callsign string) (*entity.LivePosition, error) {
	return p.state, p.err
}

func cloneFlight(f *entity.Flight) *entity.Flight {
	clone := *f
	clone.EstimatedOut = cloneTime(f.EstimatedOut)
	clone.EstimatedOff = cloneTime(f.EstimatedOff)
	clone.EstimatedOn = cloneTime(f.EstimatedOn)
	clone.EstimatedIn = cloneTime(f.EstimatedIn)
	clone.ActualOut = cloneTime(f.ActualOut)
	clone.ActualOff = cloneTime(f.ActualOff)
	clone.ActualOn = cloneTime(f.ActualOn)
	clone.ActualIn = cloneTime(f.ActualIn)
	clone.DepartureDelay = cloneInt(f.DepartureDelay)
	clone.ArrivalDelay = cloneInt(f.ArrivalDelay)
	clone.ProgressPercent = cloneInt(f.ProgressPercent)
	clone.GateOrigin = cloneString(f.GateOrigin)
	clone.GateDestination = cloneString(f.GateDestination)
	clone.TerminalOrigin = cloneString(f.TerminalOrigin)
	clone.TerminalDestination = cloneString(f.TerminalDestination)
	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func intPtr(i int) *int              { return &i }
func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }
