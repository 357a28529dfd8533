package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"inventtrack/m/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		defer a.Close()

		handler := api.New(a.repo,
			api.WithLogger(a.logger),
			api.WithMetrics(a.metrics),
			api.WithRateLimit(a.cfg.RateLimit),
		)
		server := &http.Server{
			Addr:              ":" + a.cfg.HTTPPort,
			Handler:           handler.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			a.logger.Info("InventTrack server starting", slog.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("http server", slog.Any("error", err))
				stop()
			}
		}()

		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("graceful shutdown", slog.Any("error", err))
			return err
		}
		a.logger.Info("server stopped")
		return nil
	},
}
