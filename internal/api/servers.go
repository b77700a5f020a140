package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/triplab-ai/tripd/internal/catalog"
	"github.com/triplab-ai/tripd/internal/contracts"
	"github.com/triplab-ai/tripd/internal/errors"
)

// Server represents a catalog server exposed over the API.
type Server struct {
	// ID is the unique catalog identifier, used in URL paths.
	ID string `doc:"Unique server identifier" json:"id"`

	// Name is the human-readable display name.
	Name string `doc:"Display name" json:"name"`

	// Description summarizes the service.
	Description string `doc:"Description of the service" json:"description"`
}

// ServersResponse represents the wrapped API response for a list of servers.
type ServersResponse struct {
	Body struct {
		Servers []Server `doc:"Catalog servers" json:"servers"`
	}
}

// ServerToolsRequest represents the incoming API request for listing the tool schemas of a server.
type ServerToolsRequest struct {
	Name string `doc:"ID of the server to lookup tools for" example:"weather" path:"name"`
}

// ServerToolCallRequest represents the incoming API request to call a tool on a particular server.
type ServerToolCallRequest struct {
	Server string         `doc:"ID of the server"         example:"weather"     path:"server"`
	Tool   string         `doc:"Name of the tool to call" example:"get_weather" path:"tool"`
	Body   map[string]any `doc:"Parameters for the tool call"                   path:"body"`
}

// DomainServer wraps catalog.Server for conversion to Server via ToAPIType.
type DomainServer catalog.Server

var _ Convertible[Server] = (*DomainServer)(nil)

// ToAPIType converts a wrapped domain type to Server.
func (d DomainServer) ToAPIType() (Server, error) {
	return Server{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
	}, nil
}

// RegisterServerRoutes sets up server and tool related API endpoint routes.
func RegisterServerRoutes(
	routerAPI huma.API,
	cat *catalog.Catalog,
	caller contracts.ToolCaller,
	apiPathPrefix string,
) {
	serversAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Servers"}

	// Add route at the root of the group (no path specified).
	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listServers",
			Method:      http.MethodGet,
			Summary:     "List all servers",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*ServersResponse, error) {
			return handleServers(cat)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "listTools",
			Method:      http.MethodGet,
			Path:        "/{name}/tools",
			Summary:     "List server tools",
			Tags:        append(tags, "Tools"),
		},
		func(ctx context.Context, input *ServerToolsRequest) (*ToolsResponse, error) {
			return handleServerTools(cat, input.Name)
		},
	)

	huma.Register(
		serversAPI,
		huma.Operation{
			OperationID: "callTool",
			Method:      http.MethodPost,
			Path:        "/{server}/tools/{tool}",
			Summary:     "Call a tool for a server",
			Tags:        append(tags, "Tools"),
		},
		func(ctx context.Context, input *ServerToolCallRequest) (*ToolCallResponse, error) {
			return handleServerToolCall(ctx, cat, caller, input.Server, input.Tool, input.Body)
		},
	)
}

// handleServers returns the catalog servers in catalog order.
func handleServers(cat *catalog.Catalog) (*ServersResponse, error) {
	ids := cat.Servers()

	servers := make([]Server, 0, len(ids))
	for _, id := range ids {
		s, ok := cat.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", errors.ErrUnknownServer, id)
		}

		data, err := DomainServer(s).ToAPIType()
		if err != nil {
			return nil, err
		}
		servers = append(servers, data)
	}

	resp := &ServersResponse{}
	resp.Body.Servers = servers

	return resp, nil
}

// handleServerTools returns the tool schemas advertised by a catalog server.
func handleServerTools(cat *catalog.Catalog, name string) (*ToolsResponse, error) {
	s, ok := cat.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnknownServer, name)
	}

	tools := make([]Tool, 0, len(s.Tools))
	for _, tool := range s.Tools {
		data, err := DomainTool(tool).ToAPIType()
		if err != nil {
			return nil, err
		}
		tools = append(tools, data)
	}

	resp := &ToolsResponse{}
	resp.Body = Tools{Tools: tools}

	return resp, nil
}

// handleServerToolCall validates the parameters against the catalog schema
// and dispatches the call through the tool client.
func handleServerToolCall(
	ctx context.Context,
	cat *catalog.Catalog,
	caller contracts.ToolCaller,
	server string,
	tool string,
	params map[string]any,
) (*ToolCallResponse, error) {
	if err := cat.ValidateParams(server, tool, params); err != nil {
		return nil, err
	}

	result, err := caller.CallTool(ctx, server, tool, params)
	if err != nil {
		return nil, err
	}

	resp := &ToolCallResponse{}
	resp.Body = result

	return resp, nil
}
