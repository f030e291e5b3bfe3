package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// readHeaderTimeout bounds how long a client may take to send request headers.
const readHeaderTimeout = 10 * time.Second

// startHTTPServer serves router on the configured address until ctx is
// canceled, then shuts down gracefully within the configured timeout.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	addr := net.JoinHostPort(app.config.Server.Host, strconv.Itoa(app.config.Server.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	return app.serve(ctx, server, func() error { return server.ListenAndServe() })
}

// serve runs listen in a goroutine and coordinates shutdown with ctx.
func (app *application) serve(ctx context.Context, server *http.Server, listen func() error) error {
	serverCtx, cancelServer := context.WithCancel(ctx)
	defer cancelServer()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting server", "addr", server.Addr)
		if err := listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("Server failed", "error", err)
			serverErr <- err
			cancelServer()
		}
	}()

	<-serverCtx.Done()
	app.logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer shutdownCancel()

	shutdownErr := server.Shutdown(shutdownCtx)
	app.cleanup(shutdownCtx)

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	default:
	}

	if shutdownErr != nil {
		app.logger.Error("Server shutdown failed", "error", shutdownErr)
		return fmt.Errorf("server shutdown failed: %w", shutdownErr)
	}

	app.logger.Info("Server shutdown completed")
	return nil
}
