package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/storyline"
	httpAdapter "github.com/aretw0/storyline/pkg/adapters/http"
	"github.com/aretw0/storyline/pkg/adapters/mcp"
	"github.com/aretw0/storyline/pkg/observability"
	"github.com/aretw0/storyline/pkg/session"
)

const shutdownTimeout = 5 * time.Second

// Serve exposes the story over HTTP on port until ctx is done.
func Serve(ctx context.Context, opts Options, port int) error {
	logger, err := createServerLogger(opts)
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	engine, err := createEngine(ctx, opts, logger, metrics.Hooks())
	if err != nil {
		return err
	}

	handler := httpAdapter.NewHandler(
		engine.NewSessionManager(session.WithLogger(logger)),
		httpAdapter.WithMetrics(metrics.Handler()),
		httpAdapter.WithLogger(logger),
		httpAdapter.WithVersion(storyline.Version),
		httpAdapter.WithEndingTitle(endingTitleFor(opts)),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting storyline server", "address", srv.Addr, "story", engine.Title())
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("Shutdown signal received, shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown did not complete", "err", err)
			return srv.Close()
		}
		logger.Info("Server stopped gracefully")
		return nil
	}
}

// ServeMCP exposes the story as an MCP server over "stdio" or "sse".
func ServeMCP(ctx context.Context, opts Options, transport string, port int) error {
	logger, err := createServerLogger(opts)
	if err != nil {
		return err
	}

	engine, err := createEngine(ctx, opts, logger)
	if err != nil {
		return err
	}

	srv := mcp.NewServer(
		engine.NewSessionManager(session.WithLogger(logger)),
		storyline.Version,
		mcp.WithLogger(logger),
		mcp.WithEndingTitle(endingTitleFor(opts)),
	)

	switch transport {
	case "stdio":
		logger.Info("Starting storyline MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting storyline MCP server (SSE)", "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q, supported: stdio, sse", transport)
	}
}
