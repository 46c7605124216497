package opensky

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

const defaultBaseURL = "https://opensky-network.org/api"

// Client reads live state vectors from the OpenSky network
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a new OpenSky client authenticated with the given
// token source
func NewClient(ctx context.Context, tokenSource oauth2.TokenSource, logger logger.Logger) repository.PositionProvider {
	return &Client{
		baseURL:    defaultBaseURL,
		httpClient: oauth2.NewClient(ctx, tokenSource),
		logger:     logger,
	}
}

type statesResponse struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

// FlightState returns the live state vector whose callsign matches the
// given flight, or (nil, nil) when the flight is not visible. Matching is
// fuzzy because transmitted callsigns rarely equal the published flight
// number exactly.
func (c *Client) FlightState(ctx context.Context, callsign string) (*entity.LivePosition, error) {
	url := fmt.Sprintf("%s/states/all", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch states: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("opensky returned status %d", resp.StatusCode)
	}

	var payload statesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode states response: %w", err)
	}

	wanted := strings.ToUpper(strings.ReplaceAll(callsign, " ", ""))
	for _, state := range payload.States {
		if len(state) < 10 {
			continue
		}
		transmitted, _ := state[1].(string)
		transmitted = strings.ToUpper(strings.TrimSpace(transmitted))
		if transmitted == "" {
			continue
		}
		if transmitted != wanted &&
			!strings.Contains(transmitted, wanted) &&
			!strings.Contains(wanted, transmitted) {
			continue
		}

		position := &entity.LivePosition{Callsign: transmitted}
		if altitude, ok := state[7].(float64); ok {
			position.BaroAltitude = &altitude
		}
		if onGround, ok := state[8].(bool); ok {
			position.OnGround = onGround
		}
		if velocity, ok := state[9].(float64); ok {
			position.Velocity = &velocity
		}
		return position, nil
	}

	return nil, nil
}
