package cli

import (
	"bulletin/internal/api"
	"bulletin/internal/model"
	"bulletin/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := model.InitRepository(ctx, &cfg)
	if err != nil {
		return fmt.Errorf("initialise repository: %w", err)
	}
	defer repo.Close()

	if _, err := model.EnsureBootstrapAdmin(ctx, repo, cfg); err != nil {
		logrus.WithError(err).Warn("failed to create bootstrap super_admin")
	}

	store, err := storage.NewStorage(cfg)
	if err != nil {
		return fmt.Errorf("initialise storage: %w", err)
	}

	handler, err := api.NewHTTPHandler(cfg, repo, store)
	if err != nil {
		return fmt.Errorf("initialise http handler: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(handler, store)

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("host", addr).Info("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		logrus.Info("shutdown signal received, draining connections")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logrus.Info("server stopped")
	return nil
}
