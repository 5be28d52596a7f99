// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"github.com/spf13/cobra"

	"promptwizard/internal/database"
)

var (
	migrateStatus bool
	migrateSeed   bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.ConnectWithRetry(cmd.Context(), cfg.DSN(), dbConnectAttempts, dbConnectDelay)
		if err != nil {
			return err
		}
		defer db.Close()

		if migrateStatus {
			return database.MigrationStatus(db)
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		if migrateSeed {
			return database.Seed(db)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateStatus, "status", false, "print migration status instead of migrating")
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "add an example prompt to an empty library")

	rootCmd.AddCommand(migrateCmd)
}
