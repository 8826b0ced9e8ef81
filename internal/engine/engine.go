package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Schnee111/intrasearch/internal/config"
	"github.com/Schnee111/intrasearch/internal/crawler"
	"github.com/Schnee111/intrasearch/internal/database"
	"github.com/Schnee111/intrasearch/internal/index"
	"github.com/Schnee111/intrasearch/internal/model"
	"github.com/Schnee111/intrasearch/internal/query"
	"github.com/Schnee111/intrasearch/internal/textproc"
)

// Engine is the application facade. It owns every subsystem (crawler,
// index, query engine, cache, store, state machine) and is the only
// type the CLI layer talks to.
//
// Design decision: We centralize wiring in one facade instead of
// letting commands assemble subsystems themselves because:
//  1. The crawl path and the search path share the index and the
//     store, and a single owner keeps their lifecycles consistent.
//  2. The state machine must be a singleton: one crawl at a time is an
//     invariant, and a facade-held machine makes it impossible to
//     start two by accident.
//  3. Tests can exercise full crawl-then-search flows through one
//     small surface.
type Engine struct {
	cfg        *config.Config
	db         *database.SearchDB
	logger     *slog.Logger
	normalizer *textproc.Normalizer
	indexer    *index.Indexer
	queries    *query.Engine
	cache      *query.Cache
	machine    *Machine
}

// New assembles an Engine from the given configuration and store.
// The search index starts empty; call LoadIndex to rebuild it from
// previously crawled pages.
func New(cfg *config.Config, db *database.SearchDB, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ix := index.NewIndexer()

	return &Engine{
		cfg:        cfg,
		db:         db,
		logger:     logger,
		normalizer: textproc.NewNormalizer(),
		indexer:    ix,
		queries:    query.NewEngine(ix, db),
		cache:      query.NewCache(cfg.CacheTTL, cfg.CacheEnabled),
		machine:    NewMachine(),
	}
}

// LoadIndex rebuilds the in-memory search index from the pages table.
// Pages are replayed in insertion order so empty-query listings keep
// their original ordering across restarts.
func (e *Engine) LoadIndex(ctx context.Context) error {
	pages, err := e.db.ListPages(ctx)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	for _, page := range pages {
		e.indexPage(page)
	}

	if len(pages) > 0 {
		e.logger.Debug("index rebuilt from store", "pages", len(pages))
	}
	return nil
}

// indexPage tokenizes a page and adds it to the index. The title is
// repeated so title terms weigh double relative to body terms.
func (e *Engine) indexPage(page *model.Page) {
	terms := e.normalizer.Normalize(page.Title + " " + page.Title + " " + page.Content)
	e.indexer.AddDocument(index.Document{
		URL:         page.URL,
		Title:       page.Title,
		Content:     page.Content,
		Domain:      page.Domain(),
		LastCrawled: page.LastCrawled,
	}, terms)
}

// StartCrawl validates the configuration, registers a new crawl job
// and launches the traversal in a background goroutine. It returns the
// job ID immediately; poll GetCrawlStatus or block on Wait for
// completion. Returns ErrAlreadyRunning when a crawl is active.
func (e *Engine) StartCrawl(ctx context.Context) (string, error) {
	if err := e.cfg.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	job := model.CrawlJob{
		ID:             uuid.NewString(),
		Algorithm:      e.cfg.TraversalAlgorithm(),
		SeedURLs:       append([]string(nil), e.cfg.SeedURLs...),
		AllowedDomains: append([]string(nil), e.cfg.AllowedDomains...),
		MaxPages:       e.cfg.MaxPages,
		MaxDepth:       e.cfg.MaxDepth,
		CrawlDelay:     e.cfg.CrawlDelay,
	}

	runCtx, err := e.machine.Begin(ctx, job)
	if err != nil {
		return "", err
	}

	fetcher := crawler.NewFetcher(
		crawler.WithTimeout(e.cfg.Timeout),
		crawler.WithUserAgent(e.cfg.UserAgent),
		crawler.WithMaxBodySize(e.cfg.MaxBodySize),
	)
	gate := crawler.NewGate(e.cfg.AllowedDomains, e.cfg.CrawlDelay)
	scheduler := crawler.NewScheduler(fetcher, gate,
		crawler.WithWorkers(e.cfg.FetchWorkers),
		crawler.WithLogger(e.logger),
		crawler.WithProgress(func(crawled, failed int, currentURL string) {
			e.machine.Update(func(j *model.CrawlJob) {
				j.PagesCrawled = crawled
				j.PagesFailed = failed
				j.CurrentURL = currentURL
			})
		}),
	)

	e.logger.Info("crawl started",
		"job_id", job.ID,
		"algorithm", job.Algorithm,
		"seeds", len(job.SeedURLs),
		"max_pages", job.MaxPages,
		"max_depth", job.MaxDepth,
	)

	go e.runCrawl(runCtx, scheduler, job)

	return job.ID, nil
}

// runCrawl executes the traversal and settles the state machine in a
// terminal state. A context cancellation (operator stop or signal)
// lands in stopped; everything the crawl persisted before the stop
// stays indexed and searchable.
func (e *Engine) runCrawl(ctx context.Context, scheduler *crawler.Scheduler, job model.CrawlJob) {
	err := scheduler.Run(ctx, &job, func(ctx context.Context, page *model.Page) error {
		if err := e.db.UpsertPage(ctx, page); err != nil {
			return fmt.Errorf("persist page %s: %w", page.URL, err)
		}
		e.indexPage(page)
		return nil
	})

	// A fresh crawl invalidates every cached result set.
	e.cache.Clear()

	final := e.machine.Snapshot()
	switch {
	case err == nil:
		e.machine.Finish(model.StatusCompleted)
		e.logger.Info("crawl completed",
			"job_id", job.ID,
			"pages_crawled", final.PagesCrawled,
			"pages_failed", final.PagesFailed,
		)
	case errors.Is(err, context.Canceled):
		e.machine.Finish(model.StatusStopped)
		e.logger.Info("crawl stopped",
			"job_id", job.ID,
			"pages_crawled", final.PagesCrawled,
		)
	default:
		e.machine.Finish(model.StatusStopped)
		e.logger.Error("crawl aborted",
			"job_id", job.ID,
			"pages_crawled", final.PagesCrawled,
			"error", err,
		)
	}
}

// StopCrawl requests graceful cancellation of the active crawl.
// Calling it while no crawl is running is a harmless no-op.
func (e *Engine) StopCrawl() {
	e.machine.Stop()
}

// GetCrawlStatus returns a snapshot of the current crawl job.
func (e *Engine) GetCrawlStatus() model.CrawlJob {
	return e.machine.Snapshot()
}

// Wait blocks until the active crawl finishes or the context is
// cancelled. Returns immediately when no crawl is running.
func (e *Engine) Wait(ctx context.Context) error {
	select {
	case <-e.machine.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Search executes a query against the index and records it in the
// search history.
//
// The raw query is normalized with the same pipeline used at indexing
// time. An empty normalized query lists every indexed page in
// insertion order with a zero score and bypasses the cache. Non-empty
// queries are served from the cache when a fresh entry exists;
// otherwise the full ranked result set is computed, cached untruncated
// and then cut to the limit, so later lookups with a different limit
// still hit.
func (e *Engine) Search(ctx context.Context, rawQuery, domainFilter string, limit int) (*model.SearchResponse, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	start := time.Now()
	terms := e.normalizer.Normalize(rawQuery)
	filter := ""
	if trimmed := strings.TrimSpace(domainFilter); trimmed != "" {
		filter = model.URLDomain("http://" + trimmed)
	}

	var (
		results []model.SearchResult
		cached  bool
	)

	if len(terms) == 0 {
		// Listing bypasses the cache: it reflects the live index.
		var err error
		results, err = e.queries.Search(ctx, nil, filter)
		if err != nil {
			return nil, err
		}
	} else {
		key := query.Key(terms, filter)
		if hit, ok := e.cache.Get(key); ok {
			results = hit
			cached = true
		} else {
			var err error
			results, err = e.queries.Search(ctx, terms, filter)
			if err != nil {
				return nil, err
			}
			e.cache.Put(key, results)
		}
	}

	total := len(results)
	if total > limit {
		results = results[:limit]
	}
	elapsed := time.Since(start)

	if _, err := e.db.InsertHistory(ctx, &model.HistoryEntry{
		Query:         rawQuery,
		DomainFilter:  filter,
		ResultCount:   total,
		ExecutionTime: elapsed,
		Cached:        cached,
		SearchedAt:    time.Now(),
	}); err != nil {
		// History is bookkeeping; a failed insert never fails the search.
		e.logger.Warn("record search history", "error", err)
	}

	return &model.SearchResponse{
		Results:       results,
		TotalFound:    total,
		Cached:        cached,
		ExecutionTime: elapsed,
	}, nil
}

// ClearCache drops every cached result set, expired or not, and
// returns how many entries were removed.
func (e *Engine) ClearCache() int {
	n := e.cache.Clear()
	e.logger.Debug("result cache cleared", "entries", n)
	return n
}

// GetHistory returns the most recent search records, newest first.
func (e *Engine) GetHistory(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	return e.db.ListHistory(ctx, limit)
}

// DeleteHistoryEntry removes one history record by ID. Returns
// ErrHistoryNotFound when no record has that ID.
func (e *Engine) DeleteHistoryEntry(ctx context.Context, id int64) error {
	deleted, err := e.db.DeleteHistoryEntry(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: id %d", ErrHistoryNotFound, id)
	}
	return nil
}

// ClearHistory removes every history record and returns the count.
func (e *Engine) ClearHistory(ctx context.Context) (int64, error) {
	return e.db.ClearHistory(ctx)
}

// GetStats assembles an operational summary across the store, index,
// cache and state machine.
func (e *Engine) GetStats(ctx context.Context) (*model.Stats, error) {
	pages, err := e.db.CountPages(ctx)
	if err != nil {
		return nil, err
	}
	searches, err := e.db.CountHistory(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Stats{
		TotalPages:     pages,
		TotalSearches:  searches,
		CachedQueries:  e.cache.Len(),
		VocabularySize: e.indexer.VocabularySize(),
		DomainCounts:   e.indexer.Domains(),
		LastCrawl:      e.indexer.LastCrawl(),
		CrawlStatus:    e.machine.Snapshot().Status,
	}, nil
}

// Close stops any active crawl, waits for it to settle and closes the
// store.
func (e *Engine) Close() error {
	e.machine.Stop()
	<-e.machine.Done()
	return e.db.Close()
}
