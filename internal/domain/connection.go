package domain

import "time"

const (
	// ConnectionStatusConnecting indicates a connection attempt is in progress.
	ConnectionStatusConnecting ConnectionStatus = "connecting"

	// ConnectionStatusConnected indicates the server is connected and idle.
	ConnectionStatusConnected ConnectionStatus = "connected"

	// ConnectionStatusLoading indicates a tool call is currently executing on the server.
	ConnectionStatusLoading ConnectionStatus = "loading"

	// ConnectionStatusError indicates the most recent connect or tool call failed.
	ConnectionStatusError ConnectionStatus = "error"

	// ConnectionStatusDisconnected indicates no connection exists for the server.
	ConnectionStatusDisconnected ConnectionStatus = "disconnected"
)

// ConnectionStatus represents the lifecycle state of a tool server connection.
type ConnectionStatus string

// Connection records the state of a single tool server connection.
// One exists per server that completed a simulated connect.
type Connection struct {
	// ServerID is the catalog identifier of the server (e.g. "weather").
	ServerID string `json:"server_id"`

	// Name is the human-readable display name of the server.
	Name string `json:"name"`

	// Status is the current lifecycle state of the connection.
	Status ConnectionStatus `json:"status"`

	// Tools lists the tool names negotiated for this connection.
	// Always a subset of the catalog's tool set for the server.
	Tools []string `json:"tools"`

	// LastActivity is the time of the most recent status transition or call completion.
	LastActivity time.Time `json:"last_activity"`
}
