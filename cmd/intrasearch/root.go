package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Schnee111/intrasearch/internal/config"
	"github.com/Schnee111/intrasearch/internal/database"
	"github.com/Schnee111/intrasearch/internal/engine"
	"github.com/Schnee111/intrasearch/internal/log"
	"github.com/Schnee111/intrasearch/internal/report"
)

// NewRootCmd creates the root command for intrasearch.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intrasearch",
		Short: "Search engine for intranet sites",
		Long: `Intrasearch crawls a bounded set of trusted intranet domains, builds a
TF-IDF index, and answers ranked keyword queries from the terminal.

Crawled pages persist in a local SQLite database, so the index survives
restarts and searches work without re-crawling.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .intrasearch in current or home directory)")
	cmd.PersistentFlags().String("db", "",
		"Database directory (default: XDG data directory)")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewCacheCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildConfig creates a Config from defaults, the config file, and the
// global flags. Command-specific flags are applied by each command
// afterwards, so precedence is defaults < file < flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, error if it is
	// missing. Otherwise a missing file just means defaults.
	found := config.FindConfigFile(configPath)
	if found != "" {
		if err := config.LoadConfigFile(found, cfg); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", found, err)
		}
	} else if configPath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	dbDir, err := cmd.Flags().GetString("db")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose, err = cmd.Flags().GetBool("verbose")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// openEngine opens the store, assembles the engine, and rebuilds the
// index from previously crawled pages. The caller must Close it.
func openEngine(cmd *cobra.Command, cfg *config.Config) (*engine.Engine, error) {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	eng := engine.New(cfg, db, logger)

	if err := eng.LoadIndex(cmd.Context()); err != nil {
		db.Close()
		return nil, err
	}

	return eng, nil
}

// newReportWriter selects the output format and destination from the
// shared --json/--markdown/--output flags.
func newReportWriter(cmd *cobra.Command) (report.Writer, func(), error) {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return nil, nil, err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, nil, err
	}
	if jsonOut && markdownOut {
		return nil, nil, fmt.Errorf("--json and --markdown are mutually exclusive")
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, nil, err
	}

	var (
		output  io.Writer = cmd.OutOrStdout()
		cleanup           = func() {}
	)
	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("create output directory: %w", err)
			}
		}
		f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("create output file: %w", err)
		}
		output = f
		cleanup = func() { f.Close() }
	}

	switch {
	case jsonOut:
		return report.NewJSONWriter(output, report.WithPrettyPrint()), cleanup, nil
	case markdownOut:
		return report.NewMarkdownWriter(output), cleanup, nil
	default:
		return report.NewSimpleWriter(output), cleanup, nil
	}
}
