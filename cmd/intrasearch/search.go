package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Schnee111/intrasearch/internal/config"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search the crawled index",
		Long: `Search ranks indexed pages against the query by TF-IDF cosine
similarity. Title terms weigh double relative to body terms.

An empty query lists every indexed page in crawl order, which is useful
for inspecting what a crawl picked up.

Results are cached for repeated queries; use --no-cache to force a
fresh ranking.

Examples:
  # Keyword search
  intrasearch search deploy checklist

  # Restrict to one domain, show more results
  intrasearch search -d wiki.example.com -l 25 vacation policy

  # List everything in the index
  intrasearch search

  # Machine-readable output
  intrasearch search --json onboarding`,
		Args: cobra.ArbitraryArgs,
		RunE: runSearchCmd,
	}

	cmd.Flags().IntP("limit", "l", config.DefaultSearchLimit,
		"Maximum number of results")
	cmd.Flags().StringP("domain", "d", "",
		"Restrict results to one domain")
	cmd.Flags().Bool("no-cache", false,
		"Bypass the result cache for this query")
	cmd.Flags().Bool("no-route", false,
		"Hide the seed-to-page discovery route")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the specified file path")

	return cmd
}

// runSearchCmd executes the search command.
func runSearchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	if noCache {
		cfg.CacheEnabled = false
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	domain, err := cmd.Flags().GetString("domain")
	if err != nil {
		return err
	}
	noRoute, err := cmd.Flags().GetBool("no-route")
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

	rawQuery := strings.Join(args, " ")
	resp, err := eng.Search(cmd.Context(), rawQuery, domain, limit)
	if err != nil {
		return err
	}

	if noRoute {
		for i := range resp.Results {
			resp.Results[i].Route = nil
		}
	}

	_, err = writer.WriteResults(rawQuery, resp)
	return err
}
