package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command group.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the search result cache",
		Long: `Cache manages the in-memory search result cache. Cached entries
expire on their own after the configured TTL; clear forces immediate
invalidation, which is mostly useful after content changes between
crawls.`,
	}

	cmd.AddCommand(newCacheClearCmd())

	return cmd
}

// newCacheClearCmd creates the cache clear subcommand.
func newCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop all cached search results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}

			eng, err := openEngine(cmd, cfg)
			if err != nil {
				return err
			}
			defer eng.Close()

			n := eng.ClearCache()
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached result sets\n", n)
			return nil
		},
	}
}
