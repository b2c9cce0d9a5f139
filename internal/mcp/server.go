package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/doctags/doctags-mcp/internal/config"
	"github.com/doctags/doctags-mcp/internal/generator"
	"github.com/doctags/doctags-mcp/internal/notify"
	"github.com/doctags/doctags-mcp/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "doctags-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	cfg       *config.Config
	catalog   storage.Catalog
	generator *generator.Generator
}

// NewServer creates a new MCP server instance. Diagnostics go to stderr;
// stdout carries the MCP protocol.
func NewServer(cfg *config.Config) (*Server, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}

	catalog, err := storage.NewSQLiteCatalog(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open tag catalog: %w", err)
	}

	gen := generator.New(cfg, catalog, notify.Logger{})

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:       mcpServer,
		cfg:       cfg,
		catalog:   catalog,
		generator: gen,
	}
	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.catalog.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(generateTagsTool(), s.handleGenerateTags)
	s.mcp.AddTool(lookupTagTool(), s.handleLookupTag)
	s.mcp.AddTool(listDocRootsTool(), s.handleListDocRoots)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
