// Package mcp exposes the scoring engine to AI assistants over the Model
// Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vijay-prabhu/applicant-triage/internal/config"
	"github.com/vijay-prabhu/applicant-triage/internal/engine"
	"github.com/vijay-prabhu/applicant-triage/internal/normalize"
)

// ErrMissingConfig is returned when no configuration is provided
var ErrMissingConfig = errors.New("mcp: configuration is required")

// Server is the MCP server for triage
type Server struct {
	cfg        *config.Config
	engine     *engine.Engine
	normalizer *normalize.Normalizer
	logger     *slog.Logger
	server     *mcp.Server
}

// NewServer creates a server for the configuration. version is reported to
// clients during initialization.
func NewServer(cfg *config.Config, version string, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, ErrMissingConfig
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	eng, err := engine.New(cfg, engine.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    "triage",
		Version: version,
	}

	s := &Server{
		cfg:        cfg,
		engine:     eng,
		normalizer: normalize.New(cfg),
		logger:     logger,
		server:     mcp.NewServer(impl, nil),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server started", "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
