package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 30 * time.Second

// Run starts the deadline queue, the watermill router, and the health
// listener, then blocks until ctx is cancelled. Reconciliation runs before
// the router consumes commands so deadlines missed during downtime close
// first.
func (app *App) Run(ctx context.Context) error {
	if err := app.TournamentModule.Start(ctx); err != nil {
		return fmt.Errorf("failed to start tournament module: %w", err)
	}

	routerErr := make(chan error, 1)
	go func() {
		routerErr <- app.Router.Run(ctx)
	}()

	go func() {
		app.Logger.Info("Health listener starting", slog.String("addr", app.healthServer.Addr))
		if err := app.healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger.Error("Health listener failed", slog.Any("error", err))
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-routerErr:
		if err != nil {
			app.shutdown(context.Background())
			return fmt.Errorf("router stopped: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.shutdown(shutdownCtx)
	return nil
}

// shutdown stops components in reverse dependency order. Errors are logged
// rather than returned; shutdown keeps going.
func (app *App) shutdown(ctx context.Context) {
	app.Logger.Info("Shutting down")

	if err := app.healthServer.Shutdown(ctx); err != nil {
		app.Logger.Error("Failed to stop health listener", slog.Any("error", err))
	}
	if err := app.Router.Close(); err != nil {
		app.Logger.Error("Failed to close router", slog.Any("error", err))
	}
	if err := app.TournamentModule.Stop(ctx); err != nil {
		app.Logger.Error("Failed to stop tournament module", slog.Any("error", err))
	}
	if err := app.EventBus.Close(); err != nil {
		app.Logger.Error("Failed to close event bus", slog.Any("error", err))
	}
	if err := app.DB.Close(); err != nil {
		app.Logger.Error("Failed to close database", slog.Any("error", err))
	}

	app.Logger.Info("Shutdown complete")
}
