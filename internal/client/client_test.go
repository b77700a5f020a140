package client

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/errors"
)

// fakeServer is a scripted ToolServer without simulated latency.
type fakeServer struct {
	mu          sync.Mutex
	cat         *catalog.Catalog
	connectErrs map[string]error
	invokeErrs  map[string]error
	invoked     []string
}

func newFakeServer(cat *catalog.Catalog) *fakeServer {
	return &fakeServer{
		cat:         cat,
		connectErrs: map[string]error{},
		invokeErrs:  map[string]error{},
	}
}

func (s *fakeServer) Connect(_ context.Context, serverID string) (domain.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.connectErrs[serverID]; err != nil {
		return domain.Connection{}, err
	}

	srv, ok := s.cat.Get(serverID)
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: %s", errors.ErrUnknownServer, serverID)
	}

	tools, _ := s.cat.ToolNames(serverID)

	return domain.Connection{
		ServerID:     srv.ID,
		Name:         srv.Name,
		Status:       domain.ConnectionStatusConnected,
		Tools:        tools,
		LastActivity: time.Now(),
	}, nil
}

func (s *fakeServer) Invoke(_ context.Context, serverID string, tool string, _ map[string]any) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoked = append(s.invoked, serverID+"/"+tool)

	if err := s.invokeErrs[serverID+"/"+tool]; err != nil {
		return nil, err
	}

	return map[string]any{"ok": true}, nil
}

func newTestClient(t *testing.T) (*Client, *fakeServer) {
	t.Helper()

	cat := catalog.Default()
	server := newFakeServer(cat)

	c, err := NewClient(hclog.NewNullLogger(), server, cat)
	require.NoError(t, err)

	return c, server
}

func TestNewClient_NilDependencies(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()

	_, err := NewClient(nil, newFakeServer(cat), cat)
	require.ErrorContains(t, err, "logger cannot be nil")

	_, err = NewClient(hclog.NewNullLogger(), nil, cat)
	require.ErrorContains(t, err, "tool server cannot be nil")

	_, err = NewClient(hclog.NewNullLogger(), newFakeServer(cat), nil)
	require.ErrorContains(t, err, "catalog cannot be nil")
}

func TestConnectAll_ConnectsEveryCatalogServer(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)

	require.NoError(t, c.ConnectAll(context.Background()))

	conns := c.Connections()
	require.Len(t, conns, 5)

	for _, serverID := range catalog.Default().Servers() {
		require.Equal(t, domain.ConnectionStatusConnected, c.Status(serverID))
	}
}

func TestConnectAll_ToleratesIndividualFailures(t *testing.T) {
	t.Parallel()

	c, server := newTestClient(t)
	server.connectErrs[catalog.ServerWeather] = fmt.Errorf("simulated outage")

	require.NoError(t, c.ConnectAll(context.Background()))

	require.Equal(t, domain.ConnectionStatusDisconnected, c.Status(catalog.ServerWeather))
	require.Equal(t, domain.ConnectionStatusConnected, c.Status(catalog.ServerHotels))
}

func TestCallTool_NotConnected(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)

	_, err := c.CallTool(context.Background(), catalog.ServerWeather, "get_weather", nil)
	require.ErrorIs(t, err, errors.ErrServerNotConnected)
}

func TestCallTool_ToolNotAvailable(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)
	require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))

	_, err := c.CallTool(context.Background(), catalog.ServerWeather, "summon_rain", nil)
	require.ErrorIs(t, err, errors.ErrToolNotAvailable)
}

func TestCallTool_Success(t *testing.T) {
	t.Parallel()

	c, server := newTestClient(t)
	require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))

	result, err := c.CallTool(context.Background(), catalog.ServerWeather, "get_weather", map[string]any{
		"location": "Paris",
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"ok": true}, result)
	require.Equal(t, []string{"weather/get_weather"}, server.invoked)

	require.Equal(t, domain.ConnectionStatusConnected, c.Status(catalog.ServerWeather))
}

func TestCallTool_FailureSetsErrorStatus(t *testing.T) {
	t.Parallel()

	c, server := newTestClient(t)
	require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))

	server.invokeErrs["weather/get_weather"] = fmt.Errorf("simulated outage")

	_, err := c.CallTool(context.Background(), catalog.ServerWeather, "get_weather", nil)
	require.ErrorContains(t, err, "simulated outage")
	require.Equal(t, domain.ConnectionStatusError, c.Status(catalog.ServerWeather))
}

func TestCallTool_StatusTransitions(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)
	require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))

	var mu sync.Mutex
	var transitions []domain.ConnectionStatus
	c.Subscribe(func(_ string, status domain.ConnectionStatus) {
		mu.Lock()
		defer mu.Unlock()
		transitions = append(transitions, status)
	})

	_, err := c.CallTool(context.Background(), catalog.ServerWeather, "get_weather", nil)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []domain.ConnectionStatus{
		domain.ConnectionStatusLoading,
		domain.ConnectionStatusConnected,
	}, transitions)
}

func TestSubscribeUnsubscribe(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)

	var mu sync.Mutex
	count := 0
	id := c.Subscribe(func(_ string, _ domain.ConnectionStatus) {
		mu.Lock()
		defer mu.Unlock()
		count++
	})

	require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))

	mu.Lock()
	afterConnect := count
	mu.Unlock()
	require.Equal(t, 2, afterConnect) // connecting, connected

	c.Unsubscribe(id)

	require.NoError(t, c.Connect(context.Background(), catalog.ServerMaps))

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, afterConnect, count)
}

func TestNotify_ContainsListenerPanics(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)
	c.Subscribe(func(_ string, _ domain.ConnectionStatus) {
		panic("listener bug")
	})

	require.NotPanics(t, func() {
		require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))
	})
}

func TestActivity_NewestFirstAndBounded(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)
	require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))

	for range 60 {
		_, err := c.CallTool(context.Background(), catalog.ServerWeather, "get_weather", nil)
		require.NoError(t, err)
	}

	entries := c.Activity()
	require.Len(t, entries, DefaultActivityCapacity)

	// Each successful call records an info entry followed by a success
	// entry, so the newest entry is the final success.
	require.Equal(t, "Successfully executed get_weather", entries[0].Message)
	require.Equal(t, domain.ActivitySuccess, entries[0].Kind)
	require.Equal(t, domain.ActivityInfo, entries[1].Kind)
}

func TestConnection_Lookup(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)
	require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))

	conn, err := c.Connection(catalog.ServerWeather)
	require.NoError(t, err)
	require.Equal(t, "Weather Service", conn.Name)
	require.Contains(t, conn.Tools, "get_weather")

	_, err = c.Connection(catalog.ServerHotels)
	require.ErrorIs(t, err, errors.ErrServerNotConnected)
}

func TestAvailableTools(t *testing.T) {
	t.Parallel()

	c, _ := newTestClient(t)

	_, ok := c.AvailableTools(catalog.ServerWeather)
	require.False(t, ok)

	require.NoError(t, c.Connect(context.Background(), catalog.ServerWeather))

	tools, ok := c.AvailableTools(catalog.ServerWeather)
	require.True(t, ok)
	require.ElementsMatch(t, []string{"get_weather", "get_forecast", "get_weather_alerts"}, tools)
}
