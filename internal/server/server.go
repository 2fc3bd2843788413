// Package server exposes the capture service as MCP tools.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/desktop-vision/internal/capture"
)

const (
	serverName = "desktop-vision"

	TransportStdio = "stdio"
	TransportHTTP  = "streamable-http"
)

const shutdownTimeout = 5 * time.Second

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	Version   string
}

// Server wraps the MCP server with the capture service backing its tools.
type Server struct {
	svc    *capture.Service
	logger *slog.Logger
	mcp    *mcpserver.MCPServer
}

// New creates an MCP server with all desktop-vision tools registered.
func New(svc *capture.Service, logger *slog.Logger, version string) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{svc: svc, logger: logger}
	s.mcp = mcpserver.NewMCPServer(
		serverName,
		version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithToolHandlerMiddleware(loggingMiddleware(logger)),
		mcpserver.WithRecovery(),
		mcpserver.WithInstructions("List open windows with list_windows, then capture them by id. "+
			"Screenshots are written as PNG files and their paths are returned."),
	)
	s.registerTools()
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the server on the configured transport and blocks until it
// stops. For streamable HTTP, cancelling ctx shuts the listener down.
func (s *Server) Serve(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case "", TransportStdio:
		s.logger.Info("serving MCP over stdio")
		errLog := slog.NewLogLogger(s.logger.Handler(), slog.LevelError)
		return mcpserver.ServeStdio(s.mcp, mcpserver.WithErrorLogger(errLog))
	case TransportHTTP:
		return s.serveHTTP(ctx, fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("serving MCP over streamable HTTP", "addr", addr)
		errc <- httpServer.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down MCP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
