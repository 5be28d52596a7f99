// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"promptwizard/internal/library"
	"promptwizard/internal/store"
)

var (
	exportOut  string
	importFile string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the saved prompt library as a JSON document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		prompts, err := store.NewPromptStore(db).List()
		if err != nil {
			return err
		}
		doc, err := library.Export(prompts)
		if err != nil {
			return err
		}

		if exportOut == "-" {
			_, err = cmd.OutOrStdout().Write(append(doc, '\n'))
			return err
		}
		if err := os.WriteFile(exportOut, doc, 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		slog.Info("library exported", "records", len(prompts), "file", exportOut)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Merge a library JSON document into the saved prompts",
	Long: `Read a library document (a JSON array of saved prompts) and merge it by
id: records whose id already exists are overwritten in place, new ids are
appended. Elements that fail validation are skipped and reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(importFile)
		if err != nil {
			return fmt.Errorf("read import: %w", err)
		}
		decoded, err := library.Decode(data)
		if err != nil {
			return err
		}
		for _, rej := range decoded.Rejected {
			slog.Warn("skipped invalid record", "index", rej.Index, "reason", rej.Reason)
		}

		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		res, err := store.NewPromptStore(db).Import(decoded.Records)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %d, updated %d, skipped %d\n",
			res.Created, res.Updated, decoded.Skipped())
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", library.ExportFilename, "output file (- for stdout)")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "library document (- for stdin)")
	importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(exportCmd, importCmd)
}
