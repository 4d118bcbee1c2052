package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server exposes the registry tools through the Model Context Protocol.
type Server struct {
	server     *mcp.Server
	dispatcher *Dispatcher
}

// NewServer creates an MCP server backed by dispatcher
func NewServer(dispatcher *Dispatcher, version string) *Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "location-server",
		Version: version,
	}, &mcp.ServerOptions{
		Instructions: "Location server - geocodes, normalizes and measures distances between locations",
	})

	return &Server{
		server:     server,
		dispatcher: dispatcher,
	}
}

// RegisterTools registers every registry tool with the MCP server
func (s *Server) RegisterTools() {
	for _, tool := range s.dispatcher.Registry().ListTools() {
		def := tool.Definition()
		switch def.Name {
		case DistanceToolName:
			mcp.AddTool(s.server, &mcp.Tool{
				Name:        def.Name,
				Description: def.Description,
			}, handlerFor[DistanceParams](s, def.Name))
		default:
			mcp.AddTool(s.server, &mcp.Tool{
				Name:        def.Name,
				Description: def.Description,
			}, handlerFor[LocationParams](s, def.Name))
		}
	}
}

// Run serves MCP over stdio until the client disconnects or ctx ends
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, mcp.NewStdioTransport())
}

func handlerFor[In any](s *Server, name string) func(context.Context, *mcp.ServerSession, *mcp.CallToolParamsFor[In]) (*mcp.CallToolResultFor[struct{}], error) {
	return func(ctx context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[In]) (*mcp.CallToolResultFor[struct{}], error) {
		return s.call(ctx, name, params.Arguments)
	}
}

// call dispatches args to the named tool and renders the outcome as text
// content. Failures are flagged with IsError rather than returned, so the
// client sees the message.
func (s *Server) call(ctx context.Context, name string, args any) (*mcp.CallToolResultFor[struct{}], error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return textResult(err.Error(), true), nil
	}

	resp := s.dispatcher.Call(ctx, name, raw)
	if !resp.Success {
		return textResult(resp.Error, true), nil
	}

	body, err := json.Marshal(resp.Result)
	if err != nil {
		return textResult(err.Error(), true), nil
	}
	_, isError := resp.Result.(ErrorResult)
	return textResult(string(body), isError), nil
}

func textResult(text string, isError bool) *mcp.CallToolResultFor[struct{}] {
	return &mcp.CallToolResultFor[struct{}]{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}
