// Package client implements the tool client facade: it tracks per-server
// connection state, validates tool calls against negotiated tool sets,
// records an activity log and notifies status observers.
package client

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/domain"
	"github.com/triplab-ai/tripd/internal/errors"
)

// Client dispatches tool calls through a ToolServer and owns all connection
// bookkeeping. NewClient should be used to create instances of Client.
// It is safe for concurrent use by multiple goroutines.
type Client struct {
	logger hclog.Logger
	server contracts.ToolServer
	cat    *catalog.Catalog
	now    func() time.Time
	log    *activityLog

	mu          sync.RWMutex
	connections map[string]domain.Connection

	listenerMu sync.RWMutex
	listeners  map[string]contracts.StatusListener
}

var (
	_ contracts.ToolCaller        = (*Client)(nil)
	_ contracts.ConnectionMonitor = (*Client)(nil)
	_ contracts.ActivityRecorder  = (*Client)(nil)
	_ contracts.StatusNotifier    = (*Client)(nil)
)

// NewClient creates a tool client backed by the given simulated server and catalog.
func NewClient(logger hclog.Logger, server contracts.ToolServer, cat *catalog.Catalog) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if server == nil {
		return nil, fmt.Errorf("tool server cannot be nil")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}

	return &Client{
		logger:      logger.Named("client"),
		server:      server,
		cat:         cat,
		now:         time.Now,
		log:         newActivityLog(DefaultActivityCapacity),
		connections: make(map[string]domain.Connection),
		listeners:   make(map[string]contracts.StatusListener),
	}, nil
}

// Connect establishes a connection to a single catalog server.
func (c *Client) Connect(ctx context.Context, serverID string) error {
	c.logger.Info("Connecting to server", "server", serverID)
	c.notify(serverID, domain.ConnectionStatusConnecting)

	conn, err := c.server.Connect(ctx, serverID)
	if err != nil {
		c.log.record(c.now(), fmt.Sprintf("Failed to connect to %s", serverID), domain.ActivityError, nil)
		c.notify(serverID, domain.ConnectionStatusError)
		return err
	}

	c.mu.Lock()
	c.connections[serverID] = conn
	c.mu.Unlock()

	c.log.record(c.now(), fmt.Sprintf("Connected to %s", conn.Name), domain.ActivitySuccess, nil)
	c.notify(serverID, domain.ConnectionStatusConnected)

	return nil
}

// ConnectAll connects to every server in the catalog concurrently.
// Individual connection failures are logged and tolerated; the first
// context-related error aborts the remaining attempts.
func (c *Client) ConnectAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, serverID := range c.cat.Servers() {
		g.Go(func() error {
			if err := c.Connect(ctx, serverID); err != nil {
				if ctx.Err() != nil {
					return err
				}
				c.logger.Warn("Failed to connect to server", "server", serverID, "error", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// CallTool executes a tool on a connected server.
// It fails with ErrServerNotConnected when no connection exists and
// ErrToolNotAvailable when the tool is not in the connection's tool set.
// The connection status transitions to loading for the duration of the call,
// then to connected on success or error on failure.
func (c *Client) CallTool(
	ctx context.Context,
	serverID string,
	tool string,
	params map[string]any,
) (map[string]any, error) {
	c.mu.RLock()
	conn, ok := c.connections[serverID]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrServerNotConnected, serverID)
	}

	if !slices.Contains(conn.Tools, tool) {
		return nil, fmt.Errorf("%w: %s (server: %s)", errors.ErrToolNotAvailable, tool, serverID)
	}

	c.log.record(c.now(), fmt.Sprintf("Calling %s on %s", tool, conn.Name), domain.ActivityInfo, params)
	c.setStatus(serverID, domain.ConnectionStatusLoading)

	result, err := c.server.Invoke(ctx, serverID, tool, params)
	if err != nil {
		c.log.record(c.now(), fmt.Sprintf("Failed to execute %s: %s", tool, err), domain.ActivityError, nil)
		c.setStatus(serverID, domain.ConnectionStatusError)
		return nil, err
	}

	c.log.record(c.now(), fmt.Sprintf("Successfully executed %s", tool), domain.ActivitySuccess, result)
	c.setStatus(serverID, domain.ConnectionStatusConnected)

	return result, nil
}

// Status returns the connection status for a server.
// Servers without a connection report disconnected.
func (c *Client) Status(serverID string) domain.ConnectionStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if conn, ok := c.connections[serverID]; ok {
		return conn.Status
	}

	return domain.ConnectionStatusDisconnected
}

// AvailableTools returns the tools negotiated for a server's connection.
// It returns a boolean to indicate whether a connection was found.
func (c *Client) AvailableTools(serverID string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	conn, ok := c.connections[serverID]
	if !ok {
		return nil, false
	}

	return slices.Clone(conn.Tools), true
}

// Connection returns the connection record for a single server.
func (c *Client) Connection(serverID string) (domain.Connection, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	conn, ok := c.connections[serverID]
	if !ok {
		return domain.Connection{}, fmt.Errorf("%w: %s", errors.ErrServerNotConnected, serverID)
	}

	return conn, nil
}

// Connections returns a copy of all established connection records.
func (c *Client) Connections() []domain.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()

	conns := make([]domain.Connection, 0, len(c.connections))
	for _, conn := range c.connections {
		conns = append(conns, conn)
	}

	slices.SortFunc(conns, func(a, b domain.Connection) int {
		return strings.Compare(a.ServerID, b.ServerID)
	})

	return conns
}

// Activity returns a most-recent-first copy of the activity log.
func (c *Client) Activity() []domain.ActivityEntry {
	return c.log.snapshot()
}

// Subscribe registers a listener invoked after every status transition.
// It returns the subscription ID used to unsubscribe.
func (c *Client) Subscribe(fn contracts.StatusListener) string {
	id := uuid.NewString()

	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	c.listeners[id] = fn

	return id
}

// Unsubscribe removes a previously registered listener.
func (c *Client) Unsubscribe(id string) {
	c.listenerMu.Lock()
	defer c.listenerMu.Unlock()
	delete(c.listeners, id)
}

// setStatus transitions an existing connection's status and stamps LastActivity.
func (c *Client) setStatus(serverID string, status domain.ConnectionStatus) {
	c.mu.Lock()
	if conn, ok := c.connections[serverID]; ok {
		conn.Status = status
		conn.LastActivity = c.now()
		c.connections[serverID] = conn
	}
	c.mu.Unlock()

	c.notify(serverID, status)
}

// notify invokes all listeners. Listener panics are contained and logged,
// never propagated to the caller.
func (c *Client) notify(serverID string, status domain.ConnectionStatus) {
	c.listenerMu.RLock()
	listeners := make([]contracts.StatusListener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.listenerMu.RUnlock()

	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("Status listener panicked", "server", serverID, "status", status, "panic", r)
				}
			}()
			fn(serverID, status)
		}()
	}
}
