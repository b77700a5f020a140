package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/triplab-ai/tripd/internal/assistant"
	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/client"
	"github.com/triplab-ai/tripd/internal/config"
	"github.com/triplab-ai/tripd/internal/daemon"
	"github.com/triplab-ai/tripd/internal/mock"
	"github.com/triplab-ai/tripd/internal/transcript"
)

// stack bundles the assembled assistant pipeline shared by the daemon and
// chat commands.
type stack struct {
	catalog    *catalog.Catalog
	client     *client.Client
	assistant  *assistant.Orchestrator
	transcript *transcript.Store
}

// buildStack assembles the tool server, client, assistant and transcript
// store from the loaded configuration.
func buildStack(logger hclog.Logger, cfg *config.Config) (*stack, error) {
	cat := catalog.Default()

	server, err := mock.NewServer(logger, cat, mockOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool server: %w", err)
	}

	cl, err := client.NewClient(logger, server, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool client: %w", err)
	}

	orch, err := assistant.NewOrchestrator(logger, cl, assistant.NewAnalyzer(), assistant.NewComposer())
	if err != nil {
		return nil, fmt.Errorf("failed to create assistant: %w", err)
	}

	path, err := transcriptPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve transcript path: %w", err)
	}

	store, err := transcript.NewStore(logger, path)
	if err != nil {
		return nil, fmt.Errorf("failed to create transcript store: %w", err)
	}

	return &stack{
		catalog:    cat,
		client:     cl,
		assistant:  orch,
		transcript: store,
	}, nil
}

// mockOptions maps the [mock] config section to simulated server options.
func mockOptions(cfg *config.Config) []mock.Option {
	if cfg == nil || cfg.Mock == nil {
		return nil
	}

	m := cfg.Mock

	var opts []mock.Option

	if m.Seed != nil {
		opts = append(opts, mock.WithRandSource(rand.NewSource(*m.Seed)))
	}

	if m.ConnectDelayMin != nil || m.ConnectDelayMax != nil {
		minDelay, maxDelay := mock.DefaultConnectDelayMin(), mock.DefaultConnectDelayMax()
		if m.ConnectDelayMin != nil {
			minDelay = time.Duration(*m.ConnectDelayMin)
		}
		if m.ConnectDelayMax != nil {
			maxDelay = time.Duration(*m.ConnectDelayMax)
		}
		opts = append(opts, mock.WithConnectDelay(minDelay, maxDelay))
	}

	if m.InvokeDelayMin != nil || m.InvokeDelayMax != nil {
		minDelay, maxDelay := mock.DefaultInvokeDelayMin(), mock.DefaultInvokeDelayMax()
		if m.InvokeDelayMin != nil {
			minDelay = time.Duration(*m.InvokeDelayMin)
		}
		if m.InvokeDelayMax != nil {
			maxDelay = time.Duration(*m.InvokeDelayMax)
		}
		opts = append(opts, mock.WithInvokeDelay(minDelay, maxDelay))
	}

	return opts
}

// transcriptPath resolves the transcript file location, preferring the
// configured path over the user data directory default.
func transcriptPath(cfg *config.Config) (string, error) {
	if cfg != nil && cfg.Transcript != nil && cfg.Transcript.Path != nil {
		return *cfg.Transcript.Path, nil
	}

	return transcript.DefaultPath()
}

// apiOptions maps the [api] config section to API server options.
func apiOptions(cfg *config.Config) []daemon.APIOption {
	if cfg == nil || cfg.API == nil {
		return nil
	}

	a := cfg.API

	var opts []daemon.APIOption

	if a.Timeout != nil && a.Timeout.Shutdown != nil {
		opts = append(opts, daemon.WithShutdownTimeout(time.Duration(*a.Timeout.Shutdown)))
	}

	if a.CORS != nil {
		c := a.CORS

		if c.Enable != nil {
			opts = append(opts, daemon.WithCORSEnabled(*c.Enable))
		}
		if len(c.Origins) > 0 {
			opts = append(opts, daemon.WithCORSAllowOrigins(c.Origins))
		}
		if len(c.Methods) > 0 {
			opts = append(opts, daemon.WithCORSAllowMethods(c.Methods))
		}
		if len(c.Headers) > 0 {
			opts = append(opts, daemon.WithCORSAllowHeaders(c.Headers))
		}
		if c.Credentials != nil {
			opts = append(opts, daemon.WithCORSAllowCredentials(*c.Credentials))
		}
		if c.MaxAge != nil {
			opts = append(opts, daemon.WithCORSMaxAge(time.Duration(*c.MaxAge)))
		}
	}

	return opts
}
