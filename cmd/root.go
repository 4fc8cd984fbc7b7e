package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/circdesk/internal/config"
)

// options are the persistent flags shared by every command
type options struct {
	configPath string
	reportFile string
	seedFile   string
	logLevel   string

	cfg *config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "circdesk",
		Short: "Circulation desk for a small library catalog",
		Long: `Circdesk is an interactive circulation desk for a small library.

It keeps the catalog in memory and lets you add, remove and search books,
issue and return them, append issue reports to a text file and add up fines.`,
		Example: `  # Start the menu with the built-in shelf
  circdesk

  # Start with books from a seed file and a custom report file
  circdesk --seed shelf.yaml --report-file reports/issued.txt`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (or CIRCDESK_CONFIG)")
	cmd.PersistentFlags().StringVar(&opts.reportFile, "report-file", "", "File issue reports are appended to")
	cmd.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "Seed catalog file (.yaml, .jsonl or .parquet)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newMenuCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))

	return cmd
}

// load resolves the configuration, applies flag overrides and installs the logger
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("report-file") {
		cfg.ReportFile = o.reportFile
	}
	if flags.Changed("seed") {
		cfg.SeedFile = o.seedFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	slog.Debug("Configuration loaded", "report_file", cfg.ReportFile, "seed_file", cfg.SeedFile, "currency", cfg.Currency)

	o.cfg = cfg
	return nil
}
