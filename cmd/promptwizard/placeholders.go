// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"promptwizard/internal/placeholder"
)

var (
	placeholdersFile string
	placeholdersSet  []string
)

var placeholdersCmd = &cobra.Command{
	Use:   "placeholders",
	Short: "List or fill [NAME] placeholders in prompt text",
	Long: `Without --set, print every placeholder name found in the text, one per
line, in order of first occurrence. With --set, print the text with the given
values substituted; placeholders without a value stay as written.

Examples:
  promptwizard placeholders -f prompt.txt
  promptwizard placeholders -f prompt.txt --set AUDIENCE=대학생 --set COLOR=파랑`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := parseAssignments(placeholdersSet)
		if err != nil {
			return err
		}
		data, err := readInput(placeholdersFile)
		if err != nil {
			return fmt.Errorf("read prompt: %w", err)
		}
		return runPlaceholders(cmd.OutOrStdout(), string(data), values)
	},
}

func init() {
	placeholdersCmd.Flags().StringVarP(&placeholdersFile, "file", "f", "", "prompt text file (- for stdin)")
	placeholdersCmd.Flags().StringArrayVar(&placeholdersSet, "set", nil, "placeholder value as NAME=value (repeatable)")
	placeholdersCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(placeholdersCmd)
}

// parseAssignments turns NAME=value flags into a value map. Only the first
// '=' separates; the value may be empty.
func parseAssignments(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want NAME=value", p)
		}
		values[name] = value
	}
	return values, nil
}

func runPlaceholders(w io.Writer, text string, values map[string]string) error {
	if len(values) == 0 {
		for _, name := range placeholder.Extract(text) {
			if _, err := fmt.Fprintln(w, name); err != nil {
				return err
			}
		}
		return nil
	}

	if stale := placeholder.Stale(text, values); len(stale) > 0 {
		slog.Warn("values set for placeholders not in the text", "names", stale)
	}
	_, err := io.WriteString(w, placeholder.Render(text, values))
	return err
}
