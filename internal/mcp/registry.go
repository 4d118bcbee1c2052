// Package mcp exposes the location tools over a line-delimited JSON
// protocol and over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/akolliy1/apartment-search-llm/internal/location"
)

// ToolDefinition represents the definition of a location tool
type ToolDefinition struct {
	Name        string
	Description string
	Schema      map[string]interface{}
}

// Tool is a named handler invoked with the raw "params" object of a request.
type Tool interface {
	Definition() ToolDefinition
	Execute(ctx context.Context, params json.RawMessage) (any, error)
}

// ToolRegistry manages all available tools. Tools are listed in the order
// they were registered.
type ToolRegistry struct {
	tools map[string]Tool
	order []string
}

// NewToolRegistry creates a registry with the location tools backed by g.
// A nil gazetteer uses the built-in tables.
func NewToolRegistry(g *location.Gazetteer) *ToolRegistry {
	if g == nil {
		g = location.Default()
	}

	registry := &ToolRegistry{
		tools: make(map[string]Tool),
	}

	registry.registerTool(&GeocodeTool{gazetteer: g})
	registry.registerTool(&NormalizeTool{gazetteer: g})
	registry.registerTool(&DistanceTool{})

	return registry
}

// registerTool adds a tool under its definition name, replacing any tool
// already registered with that name.
func (r *ToolRegistry) registerTool(tool Tool) {
	name := tool.Definition().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// GetTool retrieves a tool by name
func (r *ToolRegistry) GetTool(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// ListTools returns all registered tools in registration order
func (r *ToolRegistry) ListTools() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// Names returns the registered tool names in registration order
func (r *ToolRegistry) Names() []string {
	return append([]string(nil), r.order...)
}

// Execute runs the named tool. It returns ErrUnknownTool when no tool has
// that name; tool errors are returned unchanged.
func (r *ToolRegistry) Execute(ctx context.Context, name string, params json.RawMessage) (any, error) {
	tool, exists := r.tools[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return tool.Execute(ctx, params)
}
