package daemon

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/go-hclog"

	"github.com/triplab-ai/tripd/internal/assistant"
	"github.com/triplab-ai/tripd/internal/client"
	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/domain"
)

// Daemon is the long-running tripd process: it connects the tool servers,
// seeds the chat transcript and serves the HTTP API.
// NewDaemon should be used to create instances of Daemon.
type Daemon struct {
	logger     hclog.Logger
	client     *client.Client
	transcript contracts.TranscriptStore
	apiServer  *APIServer
}

// NewDaemon creates a daemon from its assembled components.
func NewDaemon(
	logger hclog.Logger,
	cl *client.Client,
	transcript contracts.TranscriptStore,
	apiServer *APIServer,
) (*Daemon, error) {
	if logger == nil || reflect.ValueOf(logger).IsNil() {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cl == nil {
		return nil, fmt.Errorf("tool client cannot be nil")
	}
	if transcript == nil || reflect.ValueOf(transcript).IsNil() {
		return nil, fmt.Errorf("transcript store cannot be nil")
	}
	if apiServer == nil {
		return nil, fmt.Errorf("API server cannot be nil")
	}

	return &Daemon{
		logger:     logger.Named("daemon"),
		client:     cl,
		transcript: transcript,
		apiServer:  apiServer,
	}, nil
}

// StartAndManage connects all tool servers, seeds the transcript and runs the
// API server until the context is canceled.
func (d *Daemon) StartAndManage(ctx context.Context) error {
	subID := d.client.Subscribe(func(serverID string, status domain.ConnectionStatus) {
		d.logger.Info("Server status changed", "server", serverID, "status", status)
	})
	defer d.client.Unsubscribe(subID)

	d.logger.Info("Connecting to tool servers...")
	if err := d.client.ConnectAll(ctx); err != nil {
		return fmt.Errorf("failed to connect tool servers: %w", err)
	}

	if err := d.seedTranscript(); err != nil {
		// The daemon still works without a usable transcript.
		d.logger.Warn("Failed to seed transcript", "error", err)
	}

	return d.apiServer.Start(ctx)
}

// seedTranscript writes the welcome and greeting messages into an empty
// transcript. Restarts with an existing transcript leave it untouched.
func (d *Daemon) seedTranscript() error {
	if len(d.transcript.Messages()) > 0 {
		return nil
	}

	if _, err := d.transcript.Append(assistant.Welcome, domain.SenderSystem); err != nil {
		return err
	}

	_, err := d.transcript.Append(assistant.Greeting, domain.SenderAssistant)

	return err
}
