package daemon

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/contracts"
)

// APIDependencies contains the required external dependencies for the API server.
// NewAPIDependencies should be used to create instances of APIDependencies.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g., "0.0.0.0:8090").
	Addr string

	// Catalog holds the static tool server registry.
	Catalog *catalog.Catalog

	// Caller dispatches tool calls to connected servers.
	Caller contracts.ToolCaller

	// Monitor provides read access to connection state.
	Monitor contracts.ConnectionMonitor

	// Recorder provides read access to the activity log.
	Recorder contracts.ActivityRecorder

	// Assistant processes chat messages into replies.
	Assistant contracts.Assistant

	// Transcript persists the chat message history.
	Transcript contracts.TranscriptStore

	// Logger for API server operations.
	Logger hclog.Logger
}

// NewAPIDependencies creates and validates APIDependencies.
func NewAPIDependencies(
	logger hclog.Logger,
	cat *catalog.Catalog,
	caller contracts.ToolCaller,
	monitor contracts.ConnectionMonitor,
	recorder contracts.ActivityRecorder,
	asst contracts.Assistant,
	transcript contracts.TranscriptStore,
	addr string,
) (APIDependencies, error) {
	deps := APIDependencies{
		Addr:       addr,
		Catalog:    cat,
		Caller:     caller,
		Monitor:    monitor,
		Recorder:   recorder,
		Assistant:  asst,
		Transcript: transcript,
		Logger:     logger,
	}

	if err := deps.Validate(); err != nil {
		return APIDependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := validateAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if d.Catalog == nil {
		return fmt.Errorf("catalog cannot be nil")
	}
	if d.Caller == nil || reflect.ValueOf(d.Caller).IsNil() {
		return fmt.Errorf("tool caller cannot be nil")
	}
	if d.Monitor == nil || reflect.ValueOf(d.Monitor).IsNil() {
		return fmt.Errorf("connection monitor cannot be nil")
	}
	if d.Recorder == nil || reflect.ValueOf(d.Recorder).IsNil() {
		return fmt.Errorf("activity recorder cannot be nil")
	}
	if d.Assistant == nil || reflect.ValueOf(d.Assistant).IsNil() {
		return fmt.Errorf("assistant cannot be nil")
	}
	if d.Transcript == nil || reflect.ValueOf(d.Transcript).IsNil() {
		return fmt.Errorf("transcript store cannot be nil")
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}
