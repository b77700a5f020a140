// Package mock implements a simulated tool server backend. It stands in for
// real travel service transports, producing synthetic payloads after
// randomized delays. Randomness and time are injectable so tests can assert
// exact output.
package mock

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/errors"
)

// Server simulates connections to, and tool execution on, the catalog's tool servers.
// NewServer should be used to create instances of Server.
// It is safe for concurrent use by multiple goroutines.
type Server struct {
	logger hclog.Logger
	cat    *catalog.Catalog
	now    func() time.Time

	connectDelayMin time.Duration
	connectDelayMax time.Duration
	invokeDelayMin  time.Duration
	invokeDelayMax  time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

var _ contracts.ToolServer = (*Server)(nil)

// NewServer creates a simulated tool server backed by the given catalog.
func NewServer(logger hclog.Logger, cat *catalog.Catalog, opt ...Option) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}

	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, fmt.Errorf("invalid mock server options: %w", err)
	}

	return &Server{
		logger:          logger.Named("mock"),
		cat:             cat,
		now:             opts.Clock,
		rnd:             rand.New(opts.Source),
		connectDelayMin: opts.ConnectDelayMin,
		connectDelayMax: opts.ConnectDelayMax,
		invokeDelayMin:  opts.InvokeDelayMin,
		invokeDelayMax:  opts.InvokeDelayMax,
	}, nil
}

// Connect simulates establishing a connection to the named server.
// It fails with ErrUnknownServer when the server is not in the catalog,
// otherwise waits for a randomized delay and returns a connected Connection.
func (s *Server) Connect(ctx context.Context, serverID string) (domain.Connection, error) {
	entry, ok := s.cat.Get(serverID)
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: %s", errors.ErrUnknownServer, serverID)
	}

	if err := s.sleep(ctx, s.connectDelayMin, s.connectDelayMax); err != nil {
		return domain.Connection{}, err
	}

	tools, _ := s.cat.ToolNames(serverID)

	s.logger.Debug("Simulated connection established", "server", serverID)

	return domain.Connection{
		ServerID:     serverID,
		Name:         entry.Name,
		Status:       domain.ConnectionStatusConnected,
		Tools:        tools,
		LastActivity: s.now(),
	}, nil
}

// Invoke simulates executing a tool on the named server.
// It fails with ErrUnknownServer for servers absent from the catalog and
// ErrUnknownTool for tools the simulated server cannot execute.
// The registry itself is never mutated.
func (s *Server) Invoke(
	ctx context.Context,
	serverID string,
	tool string,
	params map[string]any,
) (map[string]any, error) {
	if _, ok := s.cat.Get(serverID); !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownServer, serverID)
	}

	if err := s.sleep(ctx, s.invokeDelayMin, s.invokeDelayMax); err != nil {
		return nil, err
	}

	switch serverID {
	case catalog.ServerWeather:
		return s.weatherPayload(tool, params)
	case catalog.ServerMaps:
		return s.mapsPayload(tool, params)
	case catalog.ServerRestaurants:
		return s.restaurantsPayload(tool, params)
	case catalog.ServerFlights:
		return s.flightsPayload(tool, params)
	case catalog.ServerHotels:
		return s.hotelsPayload(tool, params)
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownServer, serverID)
	}
}

// sleep waits for a random duration in [min, max], or until the context is done.
func (s *Server) sleep(ctx context.Context, min, max time.Duration) error {
	d := min
	if span := max - min; span > 0 {
		d += time.Duration(s.int64n(int64(span) + 1))
	}
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// intn returns a random int in [0, n). The shared rand.Rand requires locking.
func (s *Server) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

func (s *Server) int64n(n int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Int63n(n)
}

// float64n returns a random float64 in [0, 1).
func (s *Server) float64n() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}
