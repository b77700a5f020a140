package mock

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/errors"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	s, err := NewServer(
		hclog.NewNullLogger(),
		catalog.Default(),
		WithRandSource(rand.NewSource(1)),
		WithClock(func() time.Time {
			return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
		}),
		WithConnectDelay(0, 0),
		WithInvokeDelay(0, 0),
	)
	require.NoError(t, err)

	return s
}

func TestNewServer_NilDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewServer(nil, catalog.Default())
	require.ErrorContains(t, err, "logger cannot be nil")

	_, err = NewServer(hclog.NewNullLogger(), nil)
	require.ErrorContains(t, err, "catalog cannot be nil")
}

func TestNewServer_InvalidDelayRange(t *testing.T) {
	t.Parallel()

	_, err := NewServer(
		hclog.NewNullLogger(),
		catalog.Default(),
		WithInvokeDelay(time.Second, 0),
	)
	require.Error(t, err)

	_, err = NewServer(
		hclog.NewNullLogger(),
		catalog.Default(),
		WithConnectDelay(2*time.Second, time.Second),
	)
	require.Error(t, err)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	conn, err := s.Connect(context.Background(), catalog.ServerWeather)
	require.NoError(t, err)

	require.Equal(t, catalog.ServerWeather, conn.ServerID)
	require.Equal(t, "Weather Service", conn.Name)
	require.Equal(t, domain.ConnectionStatusConnected, conn.Status)
	require.ElementsMatch(t, []string{"get_weather", "get_forecast", "get_weather_alerts"}, conn.Tools)
}

func TestConnect_UnknownServer(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	_, err := s.Connect(context.Background(), "trains")
	require.ErrorIs(t, err, errors.ErrUnknownServer)
}

func TestInvoke_UnknownServerAndTool(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	_, err := s.Invoke(context.Background(), "trains", "get_schedule", nil)
	require.ErrorIs(t, err, errors.ErrUnknownServer)

	// Advertised but unimplemented tools fail too.
	_, err = s.Invoke(context.Background(), catalog.ServerWeather, "get_weather_alerts", nil)
	require.ErrorIs(t, err, errors.ErrUnknownTool)
}

func TestInvoke_Weather(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.Invoke(context.Background(), catalog.ServerWeather, "get_weather", map[string]any{
		"location": "Paris",
	})
	require.NoError(t, err)

	require.Equal(t, "Paris", result["location"])

	temperature, ok := result["temperature"].(int)
	require.True(t, ok)
	require.GreaterOrEqual(t, temperature, 10)
	require.LessOrEqual(t, temperature, 39)

	humidity, ok := result["humidity"].(int)
	require.True(t, ok)
	require.GreaterOrEqual(t, humidity, 40)
	require.LessOrEqual(t, humidity, 79)

	require.Contains(t, weatherConditions, result["condition"])
	require.Equal(t, "2026-08-31T12:00:00Z", result["timestamp"])
}

func TestInvoke_WeatherMissingLocationDefaults(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.Invoke(context.Background(), catalog.ServerWeather, "get_weather", nil)
	require.NoError(t, err)
	require.Equal(t, "Unknown", result["location"])
}

func TestInvoke_Forecast(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.Invoke(context.Background(), catalog.ServerWeather, "get_forecast", map[string]any{
		"location": "Paris",
	})
	require.NoError(t, err)

	days, ok := result["days"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, days, 5)

	require.Equal(t, "2026-08-31", days[0]["date"])
	require.Equal(t, "2026-09-04", days[4]["date"])
}

func TestInvoke_MapsSearchLocation(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.Invoke(context.Background(), catalog.ServerMaps, "search_location", map[string]any{
		"query": "Paris",
	})
	require.NoError(t, err)

	results, ok := result["results"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, results, 2)
	require.Equal(t, "Paris City Center", results[0]["name"])
	require.Equal(t, "Paris Airport", results[1]["name"])
}

func TestInvoke_MapsCoordinates(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.Invoke(context.Background(), catalog.ServerMaps, "get_coordinates", map[string]any{
		"location": "New York",
	})
	require.NoError(t, err)

	coords, ok := result["coordinates"].(map[string]any)
	require.True(t, ok)
	require.InDelta(t, 40.7128, coords["lat"].(float64), 0.5)
	require.Equal(t, "America/New_York", result["timezone"])
}

func TestInvoke_RestaurantsCuisine(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.Invoke(context.Background(), catalog.ServerRestaurants, "search_restaurants", map[string]any{
		"location": "Rome",
		"cuisine":  "Italian",
	})
	require.NoError(t, err)

	results, ok := result["results"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, results, 5)
	require.Equal(t, "The Italian Kitchen", results[0]["name"])

	// Without a cuisine filter the first entry uses the local kitchen name.
	result, err = s.Invoke(context.Background(), catalog.ServerRestaurants, "search_restaurants", map[string]any{
		"location": "Rome",
	})
	require.NoError(t, err)

	results, ok = result["results"].([]map[string]any)
	require.True(t, ok)
	require.Equal(t, "The Local Kitchen", results[0]["name"])
}

func TestInvoke_Flights(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.Invoke(context.Background(), catalog.ServerFlights, "search_flights", map[string]any{
		"from": "New York",
		"to":   "London",
	})
	require.NoError(t, err)

	require.Equal(t, "New York", result["from"])
	require.Equal(t, "London", result["to"])
	require.Equal(t, "2026-08-31", result["date"])

	results, ok := result["results"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, results, 3)

	for _, flight := range results {
		price, ok := flight["price"].(int)
		require.True(t, ok)
		require.GreaterOrEqual(t, price, 200)
		require.LessOrEqual(t, price, 699)

		stopCount, ok := flight["stops"].(int)
		require.True(t, ok)
		require.GreaterOrEqual(t, stopCount, 0)
		require.LessOrEqual(t, stopCount, 2)
	}
}

func TestInvoke_Hotels(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	result, err := s.Invoke(context.Background(), catalog.ServerHotels, "search_hotels", map[string]any{
		"location": "Tokyo",
	})
	require.NoError(t, err)

	require.Equal(t, "Tokyo", result["location"])
	require.Equal(t, "2026-08-31", result["check_in"])
	require.Equal(t, "2026-09-01", result["check_out"])

	results, ok := result["results"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, results, 4)

	for _, hotel := range results {
		amenities, ok := hotel["amenities"].([]string)
		require.True(t, ok)
		require.GreaterOrEqual(t, len(amenities), 2)
		require.LessOrEqual(t, len(amenities), 4)
	}
}

func TestInvoke_ContextCanceled(t *testing.T) {
	t.Parallel()

	s, err := NewServer(
		hclog.NewNullLogger(),
		catalog.Default(),
		WithInvokeDelay(time.Minute, time.Minute),
	)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = s.Invoke(ctx, catalog.ServerWeather, "get_weather", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
