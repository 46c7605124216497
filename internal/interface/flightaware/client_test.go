package flightaware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightwatch-service/pkg/logger"
)

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{}) {}
func (testLogger) Warn(string, ...interface{}) {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}
func (testLogger) With(...interface{}) logger.Logger { return testLogger{} }

const flightPayload = `{
  "flights": [
    {
      "ident": "UAL123",
      "fa_flight_id": "UAL123-1741944000-airline-0500",
      "origin": {"code": "KSFO", "code_iata": "SFO", "name": "San Francisco Int'l", "city": "San Francisco"},
      "destination": {"code": "KJFK", "code_iata": "JFK", "name": "John F Kennedy Intl", "city": "New York"},
      "departure_delay": 900,
      "arrival_delay": null,
      "scheduled_out": "2026-03-14T09:45:00Z",
      "scheduled_off": "2026-03-14T10:00:00Z",
      "scheduled_on": "2026-03-14T15:00:00Z",
      "scheduled_in": "2026-03-14T15:15:00Z",
      "actual_out": "2026-03-14T09:50:00Z",
      "actual_off": null,
      "actual_on": null,
      "actual_in": null,
      "cancelled": false,
      "diverted": false,
      "progress_percent": 0,
      "status": "Taxiing",
      "gate_origin": "B12",
      "gate_destination": null,
      "terminal_origin": "3",
      "terminal_destination": null
    }
  ]
}`

func TestFetchFlightInfoMapsPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights/UAL123-1741944000-airline-0500", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(flightPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger{})
	flight, err := client.FetchFlightInfo(context.Background(), "UAL123-1741944000-airline-0500")
	require.NoError(t, err)

	assert.Equal(t, "UAL123", flight.Ident)
	assert.Equal(t, "SFO", flight.OriginIata)
	assert.Equal(t, "JFK", flight.DestinationIata)
	assert.Equal(t, "Taxiing", flight.Status)
	assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC), flight.ScheduledOff)
	require.NotNil(t, flight.ActualOut)
	assert.Nil(t, flight.ActualOff)
	require.NotNil(t, flight.DepartureDelay)
	assert.Equal(t, 15, *flight.DepartureDelay, "delay seconds become minutes")
	assert.Nil(t, flight.ArrivalDelay)
	require.NotNil(t, flight.GateOrigin)
	assert.Equal(t, "B12", *flight.GateOrigin)
	assert.Nil(t, flight.GateDestination)
}

func TestFetchFlightInfoEmptyFlights(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"flights": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger{})
	_, err := client.FetchFlightInfo(context.Background(), "nope")
	assert.Error(t, err)
}

func TestFetchFlightInfoHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", 5*time.Second, testLogger{})
	_, err := client.FetchFlightInfo(context.Background(), "UAL123-x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
