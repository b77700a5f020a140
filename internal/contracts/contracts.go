// Package contracts declares the interfaces that decouple the assistant,
// daemon and API layers from their concrete implementations.
package contracts

import (
	"context"

	"github.com/triplab-ai/tripd/internal/domain"
)

// StatusListener is invoked after every connection status transition.
type StatusListener func(serverID string, status domain.ConnectionStatus)

// ToolServer simulates the transport to a set of tool servers.
type ToolServer interface {
	// Connect establishes a simulated connection to the named server.
	Connect(ctx context.Context, serverID string) (domain.Connection, error)

	// Invoke executes a tool on the named server and returns its payload.
	Invoke(ctx context.Context, serverID string, tool string, params map[string]any) (map[string]any, error)
}

// ToolCaller dispatches tool calls and tracks per-server connection state.
type ToolCaller interface {
	// CallTool validates the connection and tool, then invokes the tool.
	CallTool(ctx context.Context, serverID string, tool string, params map[string]any) (map[string]any, error)

	// Status returns the connection status for a server.
	// Servers without a connection report domain.ConnectionStatusDisconnected.
	Status(serverID string) domain.ConnectionStatus

	// AvailableTools returns the tools negotiated for a server's connection.
	// It returns a boolean to indicate whether a connection was found.
	AvailableTools(serverID string) ([]string, bool)
}

// ConnectionMonitor provides read access to connection state for observability.
type ConnectionMonitor interface {
	// Connection returns the connection record for a single server.
	Connection(serverID string) (domain.Connection, error)

	// Connections returns a copy of all established connection records.
	Connections() []domain.Connection
}

// ActivityRecorder provides read access to the bounded activity log.
type ActivityRecorder interface {
	// Activity returns a most-recent-first copy of the activity log.
	Activity() []domain.ActivityEntry
}

// StatusNotifier allows observers to watch connection status transitions.
type StatusNotifier interface {
	// Subscribe registers a listener and returns its subscription ID.
	Subscribe(fn StatusListener) string

	// Unsubscribe removes a previously registered listener.
	Unsubscribe(id string)
}

// Assistant processes a user message and produces a reply.
type Assistant interface {
	// Process analyzes the message, executes the required tools and composes a reply.
	Process(ctx context.Context, text string) (domain.Reply, error)
}

// TranscriptStore persists the chat message list.
type TranscriptStore interface {
	// Append records a message and persists the transcript.
	Append(text string, sender domain.Sender) (domain.ChatMessage, error)

	// Messages returns a copy of all persisted messages in order.
	Messages() []domain.ChatMessage

	// Clear removes all persisted messages.
	Clear() error
}
