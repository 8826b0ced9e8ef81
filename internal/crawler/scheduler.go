package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Schnee111/intrasearch/internal/model"
)

// PageFunc receives each successfully crawled page in traversal order.
// Returning an error aborts the run: a page that cannot be indexed or
// stored means the engine behind the crawl is broken, not the site.
type PageFunc func(ctx context.Context, page *model.Page) error

// ProgressFunc receives traversal progress after every processed
// candidate: pages crawled, pages failed, and the URL most recently
// handed to the fetcher.
type ProgressFunc func(crawled, failed int, currentURL string)

// Scheduler drives a single traversal: it manages the frontier and the
// visited set, applies the admission rules, coordinates fetching and
// parsing, and hands finished pages to the caller in traversal order.
type Scheduler struct {
	// fetcher retrieves single pages.
	fetcher *Fetcher

	// gate enforces the domain allow-list and per-domain delay.
	gate *Gate

	// workers bounds parallel fetches during breadth-first traversal.
	workers int

	// logger records fetch failures and traversal milestones.
	logger *slog.Logger

	// progress, when set, is called after each processed candidate.
	progress ProgressFunc
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithWorkers bounds parallel fetches for breadth-first traversal.
// Depth-first traversal always fetches one page at a time because its
// visit order depends on the links of the page just visited.
func WithWorkers(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger for traversal events.
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithProgress registers a progress callback. The callback runs on the
// traversal goroutine and must not block.
func WithProgress(fn ProgressFunc) SchedulerOption {
	return func(s *Scheduler) {
		s.progress = fn
	}
}

// NewScheduler creates a Scheduler around a fetcher and politeness gate.
func NewScheduler(fetcher *Fetcher, gate *Gate, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		fetcher: fetcher,
		gate:    gate,
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run executes the traversal described by job, calling onPage for every
// page fetched and parsed successfully.
//
// The loop invariant: dequeue the next candidate; skip it when already
// visited, too deep, or outside the allowed domains; otherwise fetch,
// extract, and enqueue its unseen outbound links one level deeper. The
// run ends when the frontier empties or the page budget is reached, or
// early with ctx.Err() when the caller cancels.
//
// Fetch and parse failures never abort the run: the URL is marked
// visited-but-failed, logged, and skipped for the rest of the run.
func (s *Scheduler) Run(ctx context.Context, job *model.CrawlJob, onPage PageFunc) error {
	frontier := NewFrontier(job.Algorithm)
	visited := make(map[string]bool)

	seeds := make([]Item, 0, len(job.SeedURLs))
	for _, seed := range job.SeedURLs {
		seeds = append(seeds, Item{URL: model.CanonicalURL(seed), Depth: 0})
	}
	frontier.Push(seeds...)

	// Breadth-first can fetch a whole same-depth wave in parallel
	// without violating level order; depth-first cannot look ahead.
	batchSize := 1
	if job.Algorithm == model.AlgorithmBFS {
		batchSize = s.workers
	}

	crawled, failed := 0, 0
	for frontier.Len() > 0 && crawled < job.MaxPages {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch := s.nextBatch(frontier, visited, job, batchSize, job.MaxPages-crawled)
		if len(batch) == 0 {
			continue
		}

		outcomes := s.fetchBatch(ctx, batch)
		if err := ctx.Err(); err != nil {
			return err
		}

		for i, outcome := range outcomes {
			item := batch[i]

			if outcome.err != nil {
				failed++
				s.logger.Warn("page fetch failed",
					"url", item.URL,
					"depth", item.Depth,
					"error", outcome.err,
				)
				s.report(crawled, failed, item.URL)
				continue
			}

			page := outcome.page
			if err := onPage(ctx, page); err != nil {
				return fmt.Errorf("handle page %s: %w", page.URL, err)
			}
			crawled++
			s.logger.Debug("page crawled",
				"url", page.URL,
				"depth", page.Depth,
				"links", len(page.RawLinks),
				"crawled", crawled,
			)
			s.report(crawled, failed, page.URL)

			if item.Depth < job.MaxDepth {
				frontier.Push(s.children(page, item, visited)...)
			}

			if crawled >= job.MaxPages {
				break
			}
		}
	}

	s.logger.Info("crawl finished", "crawled", crawled, "failed", failed)
	return nil
}

// nextBatch pops admissible candidates off the frontier: not yet
// visited, within the depth limit, and inside the allowed domains.
// Admitted candidates are marked visited immediately so a failed fetch
// is never retried within the run.
//
// All candidates in a batch share one depth. Mixing depths would let a
// deeper fetch start before the current level finished, breaking the
// breadth-first level-order guarantee.
func (s *Scheduler) nextBatch(frontier Frontier, visited map[string]bool, job *model.CrawlJob, batchSize, budget int) []Item {
	if budget < batchSize {
		batchSize = budget
	}

	var batch []Item
	for len(batch) < batchSize {
		next, ok := frontier.Peek()
		if !ok {
			break
		}
		if len(batch) > 0 && next.Depth != batch[0].Depth {
			break
		}
		frontier.Pop()

		if visited[next.URL] || next.Depth > job.MaxDepth || !s.gate.Allowed(next.URL) {
			continue
		}
		visited[next.URL] = true
		batch = append(batch, next)
	}
	return batch
}

// children builds frontier items for a page's unseen outbound links.
// The visited check here is advisory (the authoritative one happens at
// dequeue time); it keeps the frontier from bloating with duplicates.
func (s *Scheduler) children(page *model.Page, item Item, visited map[string]bool) []Item {
	var items []Item
	for _, link := range page.RawLinks {
		canonical := model.CanonicalURL(link)
		if visited[canonical] || !s.gate.Allowed(canonical) {
			continue
		}
		items = append(items, Item{
			URL:    canonical,
			Depth:  item.Depth + 1,
			Parent: item.URL,
		})
	}
	return items
}

// fetchOutcome is the per-candidate result of a fetch wave.
type fetchOutcome struct {
	page *model.Page
	err  error
}

// fetchBatch retrieves and parses a wave of candidates with bounded
// parallelism. Outcomes come back in batch order so pages are indexed
// in deterministic traversal order regardless of fetch completion order.
// Individual failures are captured per slot, never returned as a group
// error; only context cancellation stops a wave early.
func (s *Scheduler) fetchBatch(ctx context.Context, batch []Item) []fetchOutcome {
	outcomes := make([]fetchOutcome, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, item := range batch {
		g.Go(func() error {
			outcomes[i] = s.fetchOne(gctx, item)
			return nil
		})
	}
	// Workers always return nil; Wait only propagates ctx errors, which
	// the caller re-checks after the wave.
	_ = g.Wait()

	return outcomes
}

// fetchOne retrieves and parses a single candidate.
func (s *Scheduler) fetchOne(ctx context.Context, item Item) fetchOutcome {
	if err := s.gate.Wait(ctx, item.URL); err != nil {
		return fetchOutcome{err: err}
	}

	result, err := s.fetcher.Fetch(ctx, item.URL)
	if err != nil {
		return fetchOutcome{err: err}
	}

	parser, err := NewParser(item.URL)
	if err != nil {
		return fetchOutcome{err: &FetchError{URL: item.URL, Kind: FetchParse, Err: err}}
	}
	parsed, err := parser.Parse(strings.NewReader(result.Body))
	if err != nil {
		return fetchOutcome{err: &FetchError{URL: item.URL, Kind: FetchParse, Err: err}}
	}

	return fetchOutcome{page: &model.Page{
		URL:           item.URL,
		Title:         parsed.Title,
		Content:       parsed.Text,
		RawLinks:      parsed.Links,
		Depth:         item.Depth,
		DiscoveredVia: item.Parent,
		LastCrawled:   time.Now(),
		StatusCode:    result.StatusCode,
	}}
}

// report invokes the progress callback when one is registered.
func (s *Scheduler) report(crawled, failed int, currentURL string) {
	if s.progress != nil {
		s.progress(crawled, failed, currentURL)
	}
}
