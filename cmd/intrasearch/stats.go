package main

import (
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index and crawl statistics",
		Long: `Stats summarizes the state of the engine: index size, vocabulary,
per-domain page counts, search totals, cache occupancy and the current
crawl status.

Examples:
  # Terminal summary
  intrasearch stats

  # Markdown report with a domain distribution chart
  intrasearch stats --markdown -o stats.md`,
		Args: cobra.NoArgs,
		RunE: runStatsCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the specified file path")

	return cmd
}

// runStatsCmd executes the stats command.
func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	writer, cleanup, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	eng, err := openEngine(cmd, cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	stats, err := eng.GetStats(cmd.Context())
	if err != nil {
		return err
	}

	_, err = writer.WriteStats(stats)
	return err
}
