// Package catalog holds the static registry of simulated travel tool servers
// and the tools each one exposes. The catalog is immutable after construction.
package catalog

import (
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/xeipuuv/gojsonschema"

	"github.com/triplab-ai/tripd/internal/errors"
)

// Server IDs for the known travel services.
const (
	ServerWeather     = "weather"
	ServerMaps        = "maps"
	ServerRestaurants = "restaurants"
	ServerFlights     = "flights"
	ServerHotels      = "hotels"
)

// Server describes one entry in the tool server catalog.
type Server struct {
	// ID is the unique catalog identifier, referenced by the analyzer and orchestrator.
	ID string

	// Name is the human-readable display name.
	Name string

	// Description summarizes the service.
	Description string

	// Tools are the descriptors of the tools the server advertises.
	// Not every advertised tool is executable by the simulated server;
	// unimplemented ones fail with ErrUnknownTool on invocation.
	Tools []mcp.Tool
}

// Catalog is an immutable collection of tool server descriptors.
// NewCatalog should be used to create instances of Catalog.
type Catalog struct {
	servers map[string]Server
	order   []string
}

// NewCatalog creates a catalog from the given server descriptors, preserving order.
func NewCatalog(servers ...Server) (*Catalog, error) {
	byID := make(map[string]Server, len(servers))
	order := make([]string, 0, len(servers))

	for _, s := range servers {
		if s.ID == "" {
			return nil, fmt.Errorf("catalog server missing ID (name: '%s')", s.Name)
		}
		if _, ok := byID[s.ID]; ok {
			return nil, fmt.Errorf("duplicate catalog server ID: '%s'", s.ID)
		}
		byID[s.ID] = s
		order = append(order, s.ID)
	}

	return &Catalog{servers: byID, order: order}, nil
}

// Default returns the built-in catalog of the five travel services.
func Default() *Catalog {
	c, err := NewCatalog(
		weatherServer(),
		mapsServer(),
		restaurantsServer(),
		flightsServer(),
		hotelsServer(),
	)
	if err != nil {
		// The built-in catalog is statically defined; failure here is a programming error.
		panic(err)
	}

	return c
}

// Servers returns all server IDs in catalog order.
func (c *Catalog) Servers() []string {
	return slices.Clone(c.order)
}

// Get returns the descriptor for a server ID.
// It returns a boolean to indicate whether the server was found.
func (c *Catalog) Get(id string) (Server, bool) {
	s, ok := c.servers[id]
	return s, ok
}

// ToolNames returns the advertised tool names for a server ID.
// It returns a boolean to indicate whether the server was found.
func (c *Catalog) ToolNames(id string) ([]string, bool) {
	s, ok := c.servers[id]
	if !ok {
		return nil, false
	}

	names := make([]string, 0, len(s.Tools))
	for _, t := range s.Tools {
		names = append(names, t.Name)
	}

	return names, true
}

// HasTool reports whether the named server advertises the named tool.
func (c *Catalog) HasTool(id string, tool string) bool {
	s, ok := c.servers[id]
	if !ok {
		return false
	}

	return slices.ContainsFunc(s.Tools, func(t mcp.Tool) bool {
		return t.Name == tool
	})
}

// ValidateParams checks tool call parameters against the tool's input schema.
// A nil params map is validated as an empty object.
func (c *Catalog) ValidateParams(id string, tool string, params map[string]any) error {
	s, ok := c.servers[id]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrUnknownServer, id)
	}

	idx := slices.IndexFunc(s.Tools, func(t mcp.Tool) bool {
		return t.Name == tool
	})
	if idx == -1 {
		return fmt.Errorf("%w: %s (server: %s)", errors.ErrUnknownTool, tool, id)
	}

	schema := s.Tools[idx].InputSchema
	schemaDoc := map[string]any{
		"type":       schema.Type,
		"properties": schema.Properties,
	}
	if len(schema.Required) > 0 {
		schemaDoc["required"] = schema.Required
	}

	if params == nil {
		params = map[string]any{}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schemaDoc),
		gojsonschema.NewGoLoader(params),
	)
	if err != nil {
		return fmt.Errorf("%w: %s/%s: %w", errors.ErrInvalidToolParams, id, tool, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("%w: %s/%s: %v", errors.ErrInvalidToolParams, id, tool, details)
	}

	return nil
}
