package api

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// ToolCallResponse represents the wrapped API response for calling a tool.
type ToolCallResponse struct {
	Body map[string]any
}

// ToolsResponse represents the wrapped API response for a server's tool collection.
type ToolsResponse struct {
	Body Tools
}

// Tools represents a collection of Tool.
type Tools struct {
	Tools []Tool `json:"tools"`
}

// Tool represents a tool descriptor exposed over the API.
type Tool struct {
	// Name of the tool.
	Name string `doc:"Name of the tool" json:"name"`

	// Description is a human-readable description of the tool.
	Description string `doc:"Description of what the tool does" json:"description"`

	// InputSchema is JSONSchema defining the expected parameters for the tool.
	InputSchema *JSONSchema `doc:"Input parameters schema" json:"inputSchema,omitempty"`
}

// JSONSchema defines the structure for a JSON schema object.
type JSONSchema struct {
	// Type defines the type for this schema, e.g. "object".
	Type string `json:"type"`

	// Properties represents a property name and associated object definition.
	Properties map[string]any `json:"properties,omitempty"`

	// Required lists the (keys of) Properties that are required.
	Required []string `json:"required,omitempty"`
}

// DomainTool wraps mcp.Tool for conversion to Tool via ToAPIType.
type DomainTool mcp.Tool

var _ Convertible[Tool] = (*DomainTool)(nil)

// ToAPIType converts a wrapped domain type to Tool.
func (d DomainTool) ToAPIType() (Tool, error) {
	var inputSchema *JSONSchema
	if d.InputSchema.Type != "" {
		inputSchema = &JSONSchema{
			Type:       d.InputSchema.Type,
			Properties: d.InputSchema.Properties,
			Required:   d.InputSchema.Required,
		}
	}

	return Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: inputSchema,
	}, nil
}
