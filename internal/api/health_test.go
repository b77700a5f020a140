package api

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/errors"
)

// fakeMonitor serves scripted connection records.
type fakeMonitor struct {
	connections map[string]domain.Connection
}

func (m *fakeMonitor) Connection(serverID string) (domain.Connection, error) {
	conn, ok := m.connections[serverID]
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: %s", errors.ErrServerNotConnected, serverID)
	}
	return conn, nil
}

func (m *fakeMonitor) Connections() []domain.Connection {
	conns := make([]domain.Connection, 0, len(m.connections))
	for _, conn := range m.connections {
		conns = append(conns, conn)
	}
	return conns
}

func TestParseConnectionStatus_ValidCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    domain.ConnectionStatus
		expected ConnectionState
	}{
		{
			"connecting",
			domain.ConnectionStatusConnecting,
			ConnectionStateConnecting,
		},
		{
			"connected",
			domain.ConnectionStatusConnected,
			ConnectionStateConnected,
		},
		{
			"loading",
			domain.ConnectionStatusLoading,
			ConnectionStateLoading,
		},
		{
			"error",
			domain.ConnectionStatusError,
			ConnectionStateError,
		},
		{
			"disconnected",
			domain.ConnectionStatusDisconnected,
			ConnectionStateDisconnected,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseConnectionStatus(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestParseConnectionStatus_InvalidCase(t *testing.T) {
	t.Parallel()

	input := domain.ConnectionStatus("invalid-status")
	_, err := parseConnectionStatus(input)
	require.Error(t, err)
	require.EqualError(t, err, fmt.Sprintf("unknown connection status: %s", input))
}

func TestDomainConnection_ToAPIType(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	got, err := DomainConnection(domain.Connection{
		ServerID:     "weather",
		Name:         "Weather Service",
		Status:       domain.ConnectionStatusConnected,
		Tools:        []string{"get_weather"},
		LastActivity: at,
	}).ToAPIType()
	require.NoError(t, err)

	require.Equal(t, "weather", got.ID)
	require.Equal(t, ConnectionStateConnected, got.Status)
	require.NotNil(t, got.LastActivity)
	require.Equal(t, at, *got.LastActivity)
}

func TestDomainConnection_ToAPIType_ZeroLastActivity(t *testing.T) {
	t.Parallel()

	got, err := DomainConnection(domain.Connection{
		ServerID: "weather",
		Status:   domain.ConnectionStatusConnecting,
	}).ToAPIType()
	require.NoError(t, err)
	require.Nil(t, got.LastActivity)
}

func TestHandleHealthServers_DisconnectedFallback(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()
	monitor := &fakeMonitor{
		connections: map[string]domain.Connection{
			catalog.ServerWeather: {
				ServerID:     catalog.ServerWeather,
				Name:         "Weather Service",
				Status:       domain.ConnectionStatusConnected,
				LastActivity: time.Now(),
			},
		},
	}

	resp, err := handleHealthServers(cat, monitor)
	require.NoError(t, err)

	require.Len(t, resp.Body.Servers, 5)
	require.Equal(t, ConnectionStateConnected, resp.Body.Servers[0].Status)

	// Servers without a connection record report as disconnected.
	for _, s := range resp.Body.Servers[1:] {
		require.Equal(t, ConnectionStateDisconnected, s.Status)
		require.NotEmpty(t, s.Name)
	}
}

func TestHandleHealthServer_UnknownServer(t *testing.T) {
	t.Parallel()

	_, err := handleHealthServer(catalog.Default(), &fakeMonitor{}, "trains")
	require.ErrorIs(t, err, errors.ErrUnknownServer)
}

func TestHandleHealthServer_Known(t *testing.T) {
	t.Parallel()

	resp, err := handleHealthServer(catalog.Default(), &fakeMonitor{}, catalog.ServerHotels)
	require.NoError(t, err)

	require.Equal(t, catalog.ServerHotels, resp.Body.ID)
	require.Equal(t, "Hotel Booking", resp.Body.Name)
	require.Equal(t, ConnectionStateDisconnected, resp.Body.Status)
}
