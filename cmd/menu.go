package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/circdesk/internal/catalog"
	"github.com/lehigh-university-libraries/circdesk/internal/menu"
	"github.com/lehigh-university-libraries/circdesk/internal/seed"
)

func newMenuCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive circulation menu",
		Long: `Starts the numbered circulation menu on stdin/stdout.

The catalog is seeded from --seed (or CIRCDESK_SEED_FILE) when given,
otherwise from the built-in shelf. Errors are printed and the menu keeps
running until you choose 0 or input ends.`,
		Example: `  # Issue book 101, list the shelf and exit
  printf '6 101 1 0' | circdesk menu`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}

	return cmd
}

func runMenu(cmd *cobra.Command, opts *options) error {
	cat := catalog.New()
	seedCatalog(cmd, cat, opts.cfg.SeedFile)

	controller := menu.New(cat, menu.Options{
		ReportFile: opts.cfg.ReportFile,
		Currency:   opts.cfg.Currency,
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
		Err:        cmd.ErrOrStderr(),
	})

	return controller.Run(cmd.Context())
}

// seedCatalog fills the catalog before the menu starts. Failures are reported
// but never prevent startup.
func seedCatalog(cmd *cobra.Command, cat *catalog.Catalog, path string) {
	entries := seed.Default()
	if path != "" {
		loaded, err := seed.NewLoader(path).Load()
		if err != nil {
			slog.Warn("Unable to load seed file", "path", path, "err", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Initialization error: %v\n", err)
			return
		}
		entries = loaded
	}

	if err := seed.Populate(cat, entries); err != nil {
		slog.Warn("Some seed books were skipped", "err", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Initialization error: %v\n", err)
	}
	slog.Info("Catalog seeded", "books", cat.Len())
}
