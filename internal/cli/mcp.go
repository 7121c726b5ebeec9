package cli

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/applicant-triage/internal/logging"
	"github.com/vijay-prabhu/applicant-triage/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server (stdio transport)",
	Long: `Start the MCP (Model Context Protocol) server using stdio transport.

This lets AI assistants score applicant exports, check how a single form
answer is classified and explain an applicant's score.

Add to Claude Desktop config (~/Library/Application Support/Claude/claude_desktop_config.json):

{
  "mcpServers": {
    "triage": {
      "command": "/path/to/triage",
      "args": ["mcp"]
    }
  }
}`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	// stdout carries the protocol, so logs go to stderr as JSON
	srvLogger := logging.NewLogger(os.Stderr, logging.Options{Level: level, JSON: true})

	server, err := mcp.NewServer(cfg, version, srvLogger)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Handle interrupt
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
