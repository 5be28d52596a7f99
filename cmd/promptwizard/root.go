// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"promptwizard/internal/config"
	"promptwizard/internal/database"
)

const (
	// dbConnectAttempts and dbConnectDelay bound how long startup waits for
	// PostgreSQL to accept connections.
	dbConnectAttempts = 10
	dbConnectDelay    = 2 * time.Second
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "promptwizard",
	Short: "Turn structured project ideas into Korean AI development prompts",
	Long: `promptwizard builds a structured Korean prompt for an AI coding assistant
from a project idea, manages [PLACEHOLDER] template variables in prompt text,
and keeps a searchable library of saved prompts.

Configuration comes from defaults, an optional YAML file and environment
variables, in increasing order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		setupLogging(os.Stderr, cfg.SlogLevel())
		slog.Debug("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./"+config.DefaultConfigName+".yaml if present)",
	)
}

// setupLogging installs the process-wide structured logger. Logs go to
// stderr so command output on stdout stays pipeable.
func setupLogging(w io.Writer, level slog.Level) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// openDB connects to PostgreSQL, retrying while the server starts up, and
// brings the schema up to date.
func openDB(ctx context.Context) (*sql.DB, error) {
	db, err := database.ConnectWithRetry(ctx, cfg.DSN(), dbConnectAttempts, dbConnectDelay)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// readInput reads a whole file, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
