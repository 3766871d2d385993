// Package server exposes the tool operations to an external dispatcher over
// the Model Context Protocol. The core packages stay transport-free; this is
// the only place that knows about MCP.
package server

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toolx "github.com/narinth/insurepath/insurance/tool"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP adapter over the insurance tool operations.
type Server struct {
	ops    *toolx.Operations
	server *mcp.Server
}

func New(ops *toolx.Operations) (*Server, error) {
	if ops == nil {
		return nil, errors.New("tool operations are required")
	}

	impl := &mcp.Implementation{
		Name:    "insurepath",
		Version: Version,
	}

	s := &Server{
		ops:    ops,
		server: mcp.NewServer(impl, nil),
	}
	s.registerTools()

	return s, nil
}

// Run serves over stdio until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
