package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Schnee111/intrasearch/internal/config"
	"github.com/Schnee111/intrasearch/internal/model"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [seed-url...]",
		Short: "Crawl intranet sites and build the search index",
		Long: `Crawl fetches pages starting from the given seed URLs, following links
within the allowed domains until the page or depth budget is exhausted.

Every fetched page is stored in the local database and indexed
immediately, so a stopped crawl still leaves a usable index.

The allowed domains default to the seed URL domains. Subdomains of an
allowed domain are admitted (docs.example.com is inside example.com).

Examples:
  # Breadth-first crawl of one site
  intrasearch crawl https://wiki.example.com

  # Depth-first, more pages, two sites
  intrasearch crawl -a dfs -p 500 https://wiki.example.com https://docs.example.com

  # Restrict scope to an explicit domain list
  intrasearch crawl --domains example.com https://portal.example.com

  # Seeds from the config file
  intrasearch crawl -c .intrasearch`,
		Args: cobra.ArbitraryArgs,
		RunE: runCrawlCmd,
	}

	cmd.Flags().StringP("algorithm", "a", "",
		"Traversal order: bfs or dfs (default bfs)")
	cmd.Flags().IntP("max-pages", "p", 0,
		fmt.Sprintf("Maximum pages to crawl (default %d)", config.DefaultMaxPages))
	cmd.Flags().IntP("max-depth", "d", -1,
		fmt.Sprintf("Maximum link depth from a seed (default %d)", config.DefaultMaxDepth))
	cmd.Flags().Duration("delay", 0,
		fmt.Sprintf("Minimum delay between requests to one domain (default %s)", config.DefaultCrawlDelay))
	cmd.Flags().DurationP("timeout", "t", 0,
		fmt.Sprintf("Per-request fetch timeout (default %s)", config.DefaultTimeout))
	cmd.Flags().StringSlice("domains", nil,
		"Allowed domains (default: domains of the seed URLs)")
	cmd.Flags().Int("workers", 0,
		fmt.Sprintf("Parallel fetch workers for bfs (default %d)", config.DefaultFetchWorkers))

	return cmd
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildCrawlConfig(cmd, args)
	if err != nil {
		return err
	}

	eng, err := openEngine(cmd, cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	// A signal requests a graceful stop: the crawl settles in the
	// stopped state and keeps everything indexed so far.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		fmt.Fprintln(cmd.ErrOrStderr(), "stopping crawl...")
		eng.StopCrawl()
	}()

	jobID, err := eng.StartCrawl(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Crawling %d seed(s) with %s traversal (job %s)\n",
		len(cfg.SeedURLs), cfg.Algorithm, jobID)

	start := time.Now()
	if err := eng.Wait(ctx); err != nil {
		return err
	}

	job := eng.GetCrawlStatus()
	verb := "completed"
	if job.Status == model.StatusStopped {
		verb = "stopped"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Crawl %s in %s: %d pages indexed, %d failed\n",
		verb, time.Since(start).Round(time.Millisecond), job.PagesCrawled, job.PagesFailed)

	return nil
}

// buildCrawlConfig layers crawl flags over the base configuration.
func buildCrawlConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		cfg.SeedURLs = args
	}

	if cmd.Flags().Changed("algorithm") {
		if cfg.Algorithm, err = cmd.Flags().GetString("algorithm"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-pages") {
		if cfg.MaxPages, err = cmd.Flags().GetInt("max-pages"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("max-depth") {
		if cfg.MaxDepth, err = cmd.Flags().GetInt("max-depth"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("delay") {
		if cfg.CrawlDelay, err = cmd.Flags().GetDuration("delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("workers") {
		if cfg.FetchWorkers, err = cmd.Flags().GetInt("workers"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("domains") {
		if cfg.AllowedDomains, err = cmd.Flags().GetStringSlice("domains"); err != nil {
			return nil, err
		}
	}

	// Scope defaults to the seed domains when no explicit allow-list
	// was given.
	if len(cfg.AllowedDomains) == 0 {
		seen := make(map[string]bool)
		for _, seed := range cfg.SeedURLs {
			domain := model.URLDomain(seed)
			if domain != "" && !seen[domain] {
				seen[domain] = true
				cfg.AllowedDomains = append(cfg.AllowedDomains, domain)
			}
		}
	}

	return cfg, nil
}
