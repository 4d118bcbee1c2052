package cli

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/akolliy1/apartment-search-llm/internal/config"
	"github.com/akolliy1/apartment-search-llm/internal/location"
	"github.com/akolliy1/apartment-search-llm/internal/mcp"
)

// newServeCmd creates the serve command
func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve location tools on stdin/stdout",
		Long: `Read one JSON request per line from stdin and write one JSON response per
line to stdout until stdin is closed.

Request:  {"tool": "<name>", "params": {...}}
Response: {"success": true, "result": {...}} or {"success": false, "error": "..."}

With --transport mcp the same tools are served over the Model Context Protocol.`,
		Example: `  # Serve the line protocol
  location-server serve

  # One request from the shell
  echo '{"tool": "geocode_location", "params": {"location": "Brooklyn"}}' | location-server serve

  # Serve MCP with extra places
  location-server serve --transport mcp --gazetteer places.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
}

func runServe(cmd *cobra.Command, opts *rootOptions) error {
	cfg, logger, dispatcher, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Location MCP Server started",
		"transport", cfg.Transport,
		"tools", dispatcher.Registry().Names(),
		"version", version,
	)

	switch cfg.Transport {
	case config.TransportMCP:
		server := mcp.NewServer(dispatcher, version)
		server.RegisterTools()
		err = server.Run(ctx)
	default:
		err = dispatcher.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
	}

	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("Location MCP Server stopped")
	return err
}

// setup loads configuration and builds the logger and dispatcher
func setup(cmd *cobra.Command, opts *rootOptions) (*config.Config, *slog.Logger, *mcp.Dispatcher, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := cfg.NewLogger(cmd.ErrOrStderr())

	gazetteer := location.Default()
	if cfg.Gazetteer != "" {
		gazetteer, err = location.LoadFile(cfg.Gazetteer)
		if err != nil {
			return nil, nil, nil, err
		}
		Info("Loaded gazetteer %s (%d places)", cfg.Gazetteer, len(gazetteer.Places()))
	}

	dispatcher := mcp.NewDispatcher(mcp.NewToolRegistry(gazetteer), logger)
	return cfg, logger, dispatcher, nil
}
