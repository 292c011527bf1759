package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

const shutdownTimeout = 10 * time.Second

// Run serves HTTP and the background workers until ctx is cancelled, then
// shuts everything down gracefully.
func (a *App) Run(ctx context.Context) error {
	logger := a.obs.Logger

	a.obs.StartMetricsServer(ctx, a.cfg.Observability.MetricsAddress)

	if a.jobs != nil {
		if err := a.jobs.Start(ctx); err != nil {
			return fmt.Errorf("failed to start job queue: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.HTTP.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", attr.String("port", a.cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "HTTP shutdown failed", attr.Error(err))
	}
	if err := a.obs.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Metrics shutdown failed", attr.Error(err))
	}
	a.Close(shutdownCtx)

	return nil
}
