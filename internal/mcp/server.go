// Package mcp serves the deal analysis core as Model Context Protocol tools over stdio.
package mcp

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"flip-mcp/internal/comps"
	"flip-mcp/internal/config"
)

// Version is reported to clients during initialization.
var Version = "0.1.0"

// Server holds the state for the MCP server.
type Server struct {
	cfg    *config.AppConfig
	store  *comps.Store
	now    func() time.Time
	server *sdk.Server
}

// NewServer creates a new MCP server with every tool registered.
func NewServer(cfg *config.AppConfig, store *comps.Store) *Server {
	if store == nil {
		store = comps.NewStore()
	}
	s := &Server{
		cfg:   cfg,
		store: store,
		now:   time.Now,
		server: sdk.NewServer(&sdk.Implementation{
			Name:    "flip-mcp",
			Version: Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Serve runs the server over stdio until the client disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Str("version", Version).Str("comps_dir", s.cfg.CompsDir).Msg("Starting MCP server on stdio")
	if err := s.server.Run(ctx, &sdk.StdioTransport{}); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
