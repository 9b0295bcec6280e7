package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/splatdocs/internal/content"
	"github.com/ziadkadry99/splatdocs/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the course to agents.
type Server struct {
	catalog *content.Catalog
	store   vectordb.VectorStore // nil when no index has been built
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. store may be nil, in which case
// search_docs reports that the index is missing and the other tools still
// work from the catalog.
func NewServer(catalog *content.Catalog, store vectordb.VectorStore) *Server {
	s := &Server{
		catalog: catalog,
		store:   store,
	}

	s.mcp = server.NewMCPServer(
		"splatdocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocsTool, s.handleSearchDocs)
	s.mcp.AddTool(getSubsectionTool, s.handleGetSubsection)
	s.mcp.AddTool(listOutlineTool, s.handleListOutline)
	s.mcp.AddTool(checkParityTool, s.handleCheckParity)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
