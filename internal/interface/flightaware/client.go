package flightaware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// Client fetches flight state from the FlightAware AeroAPI
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a new AeroAPI client
func NewClient(baseURL, apiKey string, timeout time.Duration, logger logger.Logger) repository.FlightProvider {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type airportInfo struct {
	Code     string `json:"code"`
	CodeIata string `json:"code_iata"`
	Name     string `json:"name"`
	City     string `json:"city"`
}

type aeroFlight struct {
	Ident               string      `json:"ident"`
	FAFlightID          string      `json:"fa_flight_id"`
	Origin              airportInfo `json:"origin"`
	Destination         airportInfo `json:"destination"`
	DepartureDelay      *int        `json:"departure_delay"` // seconds
	ArrivalDelay        *int        `json:"arrival_delay"`   // seconds
	ScheduledOut        time.Time   `json:"scheduled_out"`
	EstimatedOut        *time.Time  `json:"estimated_out"`
	ActualOut           *time.Time  `json:"actual_out"`
	ScheduledOff        time.Time   `json:"scheduled_off"`
	EstimatedOff        *time.Time  `json:"estimated_off"`
	ActualOff           *time.Time  `json:"actual_off"`
	ScheduledOn         time.Time   `json:"scheduled_on"`
	EstimatedOn         *time.Time  `json:"estimated_on"`
	ActualOn            *time.Time  `json:"actual_on"`
	ScheduledIn         time.Time   `json:"scheduled_in"`
	EstimatedIn         *time.Time  `json:"estimated_in"`
	ActualIn            *time.Time  `json:"actual_in"`
	Cancelled           bool        `json:"cancelled"`
	Diverted            bool        `json:"diverted"`
	ProgressPercent     *int        `json:"progress_percent"`
	Status              string      `json:"status"`
	GateOrigin          *string     `json:"gate_origin"`
	GateDestination     *string     `json:"gate_destination"`
	TerminalOrigin      *string     `json:"terminal_origin"`
	TerminalDestination *string     `json:"terminal_destination"`
}

type flightsResponse struct {
	Flights []aeroFlight `json:"flights"`
}

// FetchFlightInfo fetches the current snapshot for one flight by its
// AeroAPI flight id. Every failure mode comes back as a plain error; the
// caller treats them all as recoverable.
func (c *Client) FetchFlightInfo(ctx context.Context, faFlightID string) (*entity.Flight, error) {
	url := fmt.Sprintf("%s/flights/%s", c.baseURL, faFlightID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json; charset=UTF-8")
	req.Header.Set("x-apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flight %s: %w", faFlightID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aeroapi returned status %d for flight %s", resp.StatusCode, faFlightID)
	}

	var payload flightsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode flight response: %w", err)
	}
	if len(payload.Flights) == 0 {
		return nil, fmt.Errorf("aeroapi returned no flights for %s", faFlightID)
	}

	return mapFlight(&payload.Flights[0]), nil
}

// mapFlight converts the wire shape to the domain snapshot. Delays come in
// as seconds and are stored as minutes.
func mapFlight(f *aeroFlight) *entity.Flight {
	return &entity.Flight{
		FAFlightID:          f.FAFlightID,
		Ident:               f.Ident,
		OriginIata:          f.Origin.CodeIata,
		OriginName:          f.Origin.Name,
		DestinationIata:     f.Destination.CodeIata,
		DestinationName:     f.Destination.Name,
		ScheduledOut:        f.ScheduledOut,
		ScheduledOff:        f.ScheduledOff,
		ScheduledOn:         f.ScheduledOn,
		ScheduledIn:         f.ScheduledIn,
		EstimatedOut:        f.EstimatedOut,
		EstimatedOff:        f.EstimatedOff,
		EstimatedOn:         f.EstimatedOn,
		EstimatedIn:         f.EstimatedIn,
		ActualOut:           f.ActualOut,
		ActualOff:           f.ActualOff,
		ActualOn:            f.ActualOn,
		ActualIn:            f.ActualIn,
		Status:              f.Status,
		DepartureDelay:      secondsToMinutes(f.DepartureDelay),
		ArrivalDelay:        secondsToMinutes(f.ArrivalDelay),
		Cancelled:           f.Cancelled,
		Diverted:            f.Diverted,
		ProgressPercent:     f.ProgressPercent,
		GateOrigin:          f.GateOrigin,
		GateDestination:     f.GateDestination,
		TerminalOrigin:      f.TerminalOrigin,
		TerminalDestination: f.TerminalDestination,
	}
}

func secondsToMinutes(seconds *int) *int {
	if seconds == nil {
		return nil
	}
	minutes := *seconds / 60
	return &minutes
}
