package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/inventory/internal/api"
	"github.com/erazemk/inventory/internal/config"
	"github.com/erazemk/inventory/internal/logging"
	"github.com/erazemk/inventory/internal/metrics"
	"github.com/erazemk/inventory/internal/photos"
	"github.com/erazemk/inventory/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := config.NewCommand(serve).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	closeLog, err := logging.Setup(cfg.LogPath, level)
	if err != nil {
		return err
	}
	defer closeLog()

	layout, err := store.EnsureLayout(cfg.CacheDir)
	if err != nil {
		return err
	}

	repo, closeStore, err := store.Open(ctx, cfg.Backend, layout)
	if err != nil {
		return err
	}
	defer closeStore()

	slog.Info("store ready", "cache", layout.CacheDir, "backend", cfg.Backend)

	handler := api.NewRouter(repo, photos.NewStore(layout.UploadsDir), metrics.New(), cfg.MaxUpload)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server started", "addr", "http://"+cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown on SIGINT/SIGTERM or when the listener fails.
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "error", err)
		return err
	}

	slog.Info("server stopped")
	return nil
}
