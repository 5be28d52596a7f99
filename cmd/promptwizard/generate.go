// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"promptwizard/internal/models"
	"promptwizard/internal/placeholder"
	"promptwizard/internal/prompt"
)

var generateFile string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a prompt from an idea file",
	Long: `Read an idea document and print the generated prompt text.

The document uses the same field names as the HTTP API. YAML and JSON are
both accepted; use "-" to read from stdin.

Example idea.yaml:
  projectName: 스터디 메이트
  projectType: Application
  category: Education
  selectedStandardFeatures: [login, push]
  techStack:
    language: TypeScript
    platform: Web`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(generateFile)
		if err != nil {
			return fmt.Errorf("read idea: %w", err)
		}
		return runGenerate(cmd.OutOrStdout(), data)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateFile, "file", "f", "", "idea document (YAML or JSON, - for stdin)")
	generateCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(generateCmd)
}

// runGenerate decodes an idea document, validates it and writes the prompt.
// JSON is a subset of YAML, so one decoder covers both formats.
func runGenerate(w io.Writer, data []byte) error {
	var idea models.IdeaData
	if err := yaml.Unmarshal(data, &idea); err != nil {
		return fmt.Errorf("decode idea: %w", err)
	}
	if err := idea.Validate(); err != nil {
		return fmt.Errorf("invalid idea: %w", err)
	}

	text := prompt.Generate(idea)
	if names := placeholder.Extract(text); len(names) > 0 {
		slog.Info("prompt has placeholders", "names", names)
	}

	_, err := fmt.Fprintln(w, text)
	return err
}
