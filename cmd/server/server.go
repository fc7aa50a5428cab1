package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// startHTTPServer listens on the configured address and serves until ctx
// is canceled.
func (app *application) startHTTPServer(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.config.Server.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", app.config.Server.Addr(), err)
	}
	return app.serve(ctx, ln)
}

// serve runs the HTTP server on ln and shuts it down gracefully, within the
// configured timeout, once ctx is canceled.
func (app *application) serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "addr", ln.Addr().String())
		errCh <- server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		app.logger.Error("Server failed", "error", err)
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		app.logger.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("Server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
