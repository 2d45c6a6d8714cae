package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pokedex-catalog/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		handler, err := app.Initialize(cfg, logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker)
		addr := "0.0.0.0:" + cfg.Port
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("🚀 Server starting", zap.String("addr", addr), zap.String("upstream", cfg.PokeAPI.BaseURL))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		logger.Info("🛑 Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
