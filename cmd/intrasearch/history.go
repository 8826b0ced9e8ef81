package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// defaultHistoryLimit bounds how many records the history command
// shows without an explicit --limit.
const defaultHistoryLimit = 20

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show, prune or clear the search history",
		Long: `History lists past searches, newest first, with their result counts
and timing.

Examples:
  # Show the 20 most recent searches
  intrasearch history

  # Show more
  intrasearch history -l 100

  # Remove one record
  intrasearch history --delete 42

  # Remove everything
  intrasearch history --clear`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", defaultHistoryLimit,
		"Maximum number of entries to show")
	cmd.Flags().Int64("delete", 0,
		"Delete the history entry with the given ID")
	cmd.Flags().Bool("clear", false,
		"Delete all history entries")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the specified file path")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	eng, err := openEngine(cmd, cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	clear, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return err
	}
	if clear {
		n, err := eng.ClearHistory(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d history entries\n", n)
		return nil
	}

	deleteID, err := cmd.Flags().GetInt64("delete")
	if err != nil {
		return err
	}
	if deleteID != 0 {
		if err := eng.DeleteHistoryEntry(cmd.Context(), deleteID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted history entry %d\n", deleteID)
		return nil
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := eng.GetHistory(cmd.Context(), limit)
	if err != nil {
		return err
	}

	writer, cleanup, err := newReportWriter(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = writer.WriteHistory(entries)
	return err
}
