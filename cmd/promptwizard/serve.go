// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"promptwizard/internal/ai"
	"promptwizard/internal/assist"
	"promptwizard/internal/cache"
	"promptwizard/internal/database"
	"promptwizard/internal/handlers"
	"promptwizard/internal/metrics"
	"promptwizard/internal/middleware"
	"promptwizard/internal/router"
	"promptwizard/internal/storage"
	"promptwizard/internal/store"
)

// shutdownTimeout is how long in-flight requests get to finish on shutdown.
const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the promptwizard HTTP API.

PostgreSQL is required. Valkey (AI reply cache) and S3-compatible storage
(library backups) are optional; the server starts without them and the
features that need them report 503.

Examples:
  promptwizard serve
  APP_PORT=3000 promptwizard serve
  promptwizard serve --config ./deploy/promptwizard.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	db, err := openDB(ctx)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	// Seed an example record (no-op if the library is not empty).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return err
		}
	}

	promptStore := store.NewPromptStore(db)
	backupStore := store.NewBackupStore(db)
	cacheLogStore := store.NewCacheLogStore(db)
	if n, err := promptStore.Count(); err == nil {
		slog.Info("prompt library opened", "prompts", n)
	}

	// Valkey is optional: without it AI replies are simply not cached.
	var replyCache assist.Cache
	var purger handlers.CachePurger
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, ai reply cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		rc := cache.NewResponseCache(valkeyClient, cfg.AICacheTTL)
		replyCache, purger = rc, rc
	}

	// S3-compatible storage is optional: without it backups are disabled.
	var uploader handlers.BackupUploader
	storageClient, err := storage.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if storageClient != nil {
		uploader = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, library backups disabled")
	}

	aiRegistry := ai.NewRegistry(cfg.AIProvider, cfg.AIProviders)
	if !aiRegistry.HasProvider(cfg.AIProvider) {
		slog.Warn("active ai provider has no api key, wizard calls will fail", "provider", cfg.AIProvider)
	}
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	m := metrics.New()
	aiLimiter := middleware.NewRateLimiter(cfg.AIRateLimit, time.Minute)
	defer aiLimiter.Stop()

	r := router.New(router.Deps{
		Prompts:   handlers.NewPrompts(m),
		Wizard:    handlers.NewWizard(assist.New(aiRegistry, replyCache, m), aiRegistry, purger, cacheLogStore),
		Library:   handlers.NewLibrary(promptStore, backupStore, uploader, m),
		AILimiter: aiLimiter,
		Metrics:   m.Handler(),
	})

	// WriteTimeout must accommodate wizard endpoints that wait on LLM
	// responses (typically 10-30s, up to 60s for long prompts).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
