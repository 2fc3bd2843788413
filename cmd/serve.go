package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mj1618/desktop-vision/internal/platform"
	"github.com/mj1618/desktop-vision/internal/server"
	"github.com/mj1618/desktop-vision/internal/version"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing the window capture tools",
	Long: `Start a Model Context Protocol (MCP) server exposing list_windows,
capture_window, capture_windows and capture_display as tools.

Screen recording permission must be granted before the server starts.

Supported transports:
  stdio             Standard I/O (default, for local MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  desktop-vision serve
  desktop-vision serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

// checkPermissions is swapped out in tests.
var checkPermissions = platform.CheckPermissions

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default from config: stdio)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http transport (default from config: 8080)")
}

// serverConfig merges the serve flags over the loaded configuration.
func serverConfig(cmd *cobra.Command) server.Config {
	sc := server.Config{
		Transport: cfg.Server.Transport,
		Port:      cfg.Server.Port,
		Version:   version.Version,
	}
	if cmd.Flags().Changed("transport") {
		sc.Transport, _ = cmd.Flags().GetString("transport")
	}
	if cmd.Flags().Changed("port") {
		sc.Port, _ = cmd.Flags().GetInt("port")
	}
	return sc
}

func runServe(cmd *cobra.Command, args []string) error {
	sc := serverConfig(cmd)
	switch sc.Transport {
	case server.TransportStdio, server.TransportHTTP:
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", sc.Transport)
	}

	if err := checkPermissions(); err != nil {
		logger.Error("screen recording permission check failed", "error", err)
		return fmt.Errorf("screen recording permission required: %w", err)
	}

	svc, err := newService()
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, server.New(svc, logger, sc.Version), sc)
}

// runServer is swapped out in tests.
var runServer = func(ctx context.Context, srv *server.Server, sc server.Config) error {
	return srv.Serve(ctx, sc)
}
