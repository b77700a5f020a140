package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/errors"
)

// stubCaller records the last call and returns a scripted result.
type stubCaller struct {
	lastServer string
	lastTool   string
	lastParams map[string]any
	result     map[string]any
	err        error
}

func (c *stubCaller) CallTool(_ context.Context, serverID string, tool string, params map[string]any) (map[string]any, error) {
	c.lastServer = serverID
	c.lastTool = tool
	c.lastParams = params
	return c.result, c.err
}

func (c *stubCaller) Status(_ string) domain.ConnectionStatus {
	return domain.ConnectionStatusConnected
}

func (c *stubCaller) AvailableTools(_ string) ([]string, bool) {
	return nil, false
}

func TestHandleServers(t *testing.T) {
	t.Parallel()

	resp, err := handleServers(catalog.Default())
	require.NoError(t, err)

	require.Len(t, resp.Body.Servers, 5)
	require.Equal(t, catalog.ServerWeather, resp.Body.Servers[0].ID)
	require.Equal(t, "Weather Service", resp.Body.Servers[0].Name)
	require.Equal(t, catalog.ServerHotels, resp.Body.Servers[4].ID)
}

func TestHandleServerTools(t *testing.T) {
	t.Parallel()

	resp, err := handleServerTools(catalog.Default(), catalog.ServerWeather)
	require.NoError(t, err)

	require.Len(t, resp.Body.Tools, 3)
	require.Equal(t, "get_weather", resp.Body.Tools[0].Name)
	require.NotNil(t, resp.Body.Tools[0].InputSchema)
	require.Equal(t, "object", resp.Body.Tools[0].InputSchema.Type)
	require.Equal(t, []string{"location"}, resp.Body.Tools[0].InputSchema.Required)
}

func TestHandleServerTools_UnknownServer(t *testing.T) {
	t.Parallel()

	_, err := handleServerTools(catalog.Default(), "trains")
	require.ErrorIs(t, err, errors.ErrUnknownServer)
}

func TestHandleServerToolCall(t *testing.T) {
	t.Parallel()

	caller := &stubCaller{
		result: map[string]any{"location": "Paris", "temperature": 21},
	}

	resp, err := handleServerToolCall(
		context.Background(),
		catalog.Default(),
		caller,
		catalog.ServerWeather,
		"get_weather",
		map[string]any{"location": "Paris"},
	)
	require.NoError(t, err)

	require.Equal(t, caller.result, resp.Body)
	require.Equal(t, catalog.ServerWeather, caller.lastServer)
	require.Equal(t, "get_weather", caller.lastTool)
}

func TestHandleServerToolCall_InvalidParams(t *testing.T) {
	t.Parallel()

	caller := &stubCaller{}

	// Validation failures never reach the tool caller.
	_, err := handleServerToolCall(
		context.Background(),
		catalog.Default(),
		caller,
		catalog.ServerWeather,
		"get_weather",
		map[string]any{},
	)
	require.ErrorIs(t, err, errors.ErrInvalidToolParams)
	require.Empty(t, caller.lastTool)
}

func TestHandleServerToolCall_UnknownServer(t *testing.T) {
	t.Parallel()

	_, err := handleServerToolCall(
		context.Background(),
		catalog.Default(),
		&stubCaller{},
		"trains",
		"get_schedule",
		nil,
	)
	require.ErrorIs(t, err, errors.ErrUnknownServer)
}
