package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/errors"
)

const (
	ConnectionStateConnecting   ConnectionState = "connecting"
	ConnectionStateConnected    ConnectionState = "connected"
	ConnectionStateLoading      ConnectionState = "loading"
	ConnectionStateError        ConnectionState = "error"
	ConnectionStateDisconnected ConnectionState = "disconnected"
)

// ConnectionState represents the connection status of a tool server.
type ConnectionState string

// ServerStatus is used to provide information about the connection to a tool server.
type ServerStatus struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Status       ConnectionState `json:"status"`
	Tools        []string        `json:"tools,omitempty"`
	LastActivity *time.Time      `json:"lastActivity,omitempty"`
}

// ServersStatusResponse is the response for GET /health/servers.
type ServersStatusResponse struct {
	Body struct {
		Servers []ServerStatus `doc:"Connection statuses for all catalog servers" json:"servers"`
	}
}

// ServerStatusRequest represents the incoming request for obtaining a single ServerStatus.
type ServerStatusRequest struct {
	Name string `doc:"ID of the server to check" example:"weather" path:"name"`
}

// ServerStatusResponse represents the wrapped API response for a ServerStatus.
type ServerStatusResponse struct {
	Body ServerStatus
}

// DomainConnection wraps domain.Connection for conversion to ServerStatus via ToAPIType.
type DomainConnection domain.Connection

var _ Convertible[ServerStatus] = (*DomainConnection)(nil)

// ToAPIType can be used to convert a wrapped domain type to an API-safe type.
func (d DomainConnection) ToAPIType() (ServerStatus, error) {
	status, err := parseConnectionStatus(d.Status)
	if err != nil {
		return ServerStatus{}, err
	}

	var lastActivity *time.Time
	if !d.LastActivity.IsZero() {
		t := d.LastActivity
		lastActivity = &t
	}

	return ServerStatus{
		ID:           d.ServerID,
		Name:         d.Name,
		Status:       status,
		Tools:        d.Tools,
		LastActivity: lastActivity,
	}, nil
}

// RegisterHealthRoutes sets up health-related API endpoint routes.
func RegisterHealthRoutes(
	routerAPI huma.API,
	cat *catalog.Catalog,
	monitor contracts.ConnectionMonitor,
	apiPathPrefix string,
) {
	healthAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Health"}

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "listServersHealth",
			Method:      http.MethodGet,
			Path:        "/servers",
			Summary:     "List the connection statuses for all servers",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ServersStatusResponse, error) {
			return handleHealthServers(cat, monitor)
		},
	)

	huma.Register(
		healthAPI,
		huma.Operation{
			OperationID: "getServerHealth",
			Method:      http.MethodGet,
			Path:        "/servers/{name}",
			Summary:     "Get the connection status of a server",
			Tags:        tags,
		},
		func(ctx context.Context, input *ServerStatusRequest) (*ServerStatusResponse, error) {
			return handleHealthServer(cat, monitor, input.Name)
		},
	)
}

// handleHealthServers is the handler for retrieving the connection status of every catalog server.
// Servers without an established connection report as disconnected.
func handleHealthServers(cat *catalog.Catalog, monitor contracts.ConnectionMonitor) (*ServersStatusResponse, error) {
	ids := cat.Servers()

	servers := make([]ServerStatus, 0, len(ids))
	for _, id := range ids {
		data, err := serverStatus(cat, monitor, id)
		if err != nil {
			return nil, err
		}
		servers = append(servers, data)
	}

	resp := &ServersStatusResponse{}
	resp.Body.Servers = servers

	return resp, nil
}

// handleHealthServer is the handler for retrieving the connection status of the specified catalog server.
func handleHealthServer(
	cat *catalog.Catalog,
	monitor contracts.ConnectionMonitor,
	name string,
) (*ServerStatusResponse, error) {
	if _, ok := cat.Get(name); !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownServer, name)
	}

	data, err := serverStatus(cat, monitor, name)
	if err != nil {
		return nil, err
	}

	resp := &ServerStatusResponse{}
	resp.Body = data

	return resp, nil
}

func serverStatus(cat *catalog.Catalog, monitor contracts.ConnectionMonitor, id string) (ServerStatus, error) {
	conn, err := monitor.Connection(id)
	if err != nil {
		s, ok := cat.Get(id)
		if !ok {
			return ServerStatus{}, fmt.Errorf("%w: %s", errors.ErrUnknownServer, id)
		}

		return ServerStatus{
			ID:     id,
			Name:   s.Name,
			Status: ConnectionStateDisconnected,
		}, nil
	}

	return DomainConnection(conn).ToAPIType()
}

func parseConnectionStatus(status domain.ConnectionStatus) (ConnectionState, error) {
	switch status {
	case domain.ConnectionStatusConnecting:
		return ConnectionStateConnecting, nil
	case domain.ConnectionStatusConnected:
		return ConnectionStateConnected, nil
	case domain.ConnectionStatusLoading:
		return ConnectionStateLoading, nil
	case domain.ConnectionStatusError:
		return ConnectionStateError, nil
	case domain.ConnectionStatusDisconnected:
		return ConnectionStateDisconnected, nil
	default:
		return "", fmt.Errorf("unknown connection status: %s", status)
	}
}
