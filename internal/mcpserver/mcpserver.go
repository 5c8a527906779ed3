// Package mcpserver exposes the catalog store as MCP tools over stdio.
// Each tool accepts an optional path argument so clients can address any
// discovered catalog; with no path the manager's default catalog is used.
package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/stringcat/stringcat/pkg/store"
)

// Server wires catalog stores into an MCP tool server.
type Server struct {
	manager *store.Manager
	logger  *zerolog.Logger
	mcp     *server.MCPServer
}

// New creates the MCP server and registers all tools.
func New(manager *store.Manager, logger *zerolog.Logger, version string) *Server {
	s := &Server{
		manager: manager,
		logger:  logger,
	}
	s.mcp = server.NewMCPServer(
		"stringcat",
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Manage translations in .xcstrings string catalogs using the provided tools."),
	)
	s.registerTranslationTools()
	s.registerKeyTools()
	s.registerLanguageTools()
	s.registerFileTools()
	return s
}

// ServeStdio blocks serving MCP requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info().
		Str("default_catalog", s.manager.DefaultPath()).
		Msg("Starting MCP server on stdio")
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server, used by tests to call tools
// without a transport.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// storeFor resolves the optional path argument to a store.
func (s *Server) storeFor(path string) (*store.Store, error) {
	return s.manager.StoreFor(path)
}

// jsonText renders a tool payload as indented JSON.
func jsonText(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, "failed to serialize response: "+err.Error())
	}
	return string(data)
}
