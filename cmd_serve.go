package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Govind-619/storefront/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		a, err := newApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := a.Close(closeCtx); err != nil {
				logger.Warn("Failed to release resources", zap.Error(err))
			}
		}()

		// An unreachable catalog is not fatal; shoppers see an empty list
		// until a refresh succeeds.
		if _, err := a.engine.Catalog().Refresh(ctx); err != nil {
			logger.Warn("Initial catalog load failed", zap.Error(err))
		}

		router := routes.SetupRouter(a.controller, routes.Options{
			SessionSecret:  cfg.SessionSecret,
			JWTSecret:      cfg.JWTSecret,
			SecureCookies:  cfg.IsProduction(),
			AllowedOrigins: cfg.AllowedOrigins(),
			Checks:         a.checks,
		})
		srv := &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Server starting", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "grace period for in-flight requests")
}
