package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/circdesk/internal/models"
	"github.com/lehigh-university-libraries/circdesk/internal/seed"
)

func newSeedCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed catalog file tools",
		Long: `Tools for the files the catalog is seeded from.

Seed files may be YAML (a list of books), JSONL (one book per line)
or Parquet. Every book has an id, title, author and category
(novel, science or history).`,
	}

	cmd.AddCommand(newSeedInspectCmd(opts))
	cmd.AddCommand(newSeedExportCmd(opts))

	return cmd
}

func newSeedInspectCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show the books a seed file would load",
		Example: `  # Inspect a YAML seed file
  circdesk seed inspect --file shelf.yaml

  # Inspect the configured seed (or the built-in shelf)
  circdesk seed inspect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = opts.cfg.SeedFile
			}

			entries := seed.Default()
			source := "built-in shelf"
			if file != "" {
				loaded, err := seed.NewLoader(file).Load()
				if err != nil {
					return fmt.Errorf("failed to load seed file: %w", err)
				}
				entries = loaded
				source = file
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Loaded %d books from %s\n", len(entries), source)
			fmt.Fprintln(out, strings.Repeat("=", 80))

			problems := 0
			seen := make(map[int]bool, len(entries))
			for _, e := range entries {
				r, err := e.Record()
				switch {
				case err != nil:
					problems++
					fmt.Fprintf(out, "%-6d%-25s%-20s  ! %v\n", e.ID, e.Title, e.Author, err)
				case seen[e.ID]:
					problems++
					fmt.Fprintf(out, "%-6d%-25s%-20s  ! duplicate id\n", e.ID, e.Title, e.Author)
				default:
					fmt.Fprintf(out, "%-6d%-25s%-20s%-10s\n", r.ID, r.Title, r.Author, describe(r))
				}
				seen[e.ID] = true
			}

			fmt.Fprintln(out, strings.Repeat("-", 80))
			fmt.Fprintf(out, "Problems: %d\n", problems)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Seed file to inspect (defaults to the configured seed)")

	return cmd
}

func newSeedExportCmd(opts *options) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the configured seed (or the built-in shelf) to a file",
		Example: `  # Start a YAML seed file from the built-in shelf
  circdesk seed export --output shelf.yaml

  # Convert a JSONL seed to Parquet
  circdesk seed export --seed shelf.jsonl --output shelf.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := seed.Default()
			if opts.cfg.SeedFile != "" {
				loaded, err := seed.NewLoader(opts.cfg.SeedFile).Load()
				if err != nil {
					return fmt.Errorf("failed to load seed file: %w", err)
				}
				entries = loaded
			}

			if err := seed.Write(output, entries); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d books to %s\n", len(entries), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Destination file (.yaml, .jsonl or .parquet)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func describe(r *models.Record) string {
	return fmt.Sprintf("%s @ %.2f", r.Category, r.FineRate())
}
