package config

import "errors"

// Configuration validation errors.
// These are returned by Config.Validate() and name exactly what is wrong
// with the crawl parameters. They are the ConfigError class of the error
// taxonomy: rejected before any fetch, never retried.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). Callers can use errors.Is()
// for programmatic handling while still getting a human-readable message.
var (
	// ErrNoSeeds is returned when the seed URL list is empty.
	// A crawl with no starting points can never make progress.
	ErrNoSeeds = errors.New("no seed URLs configured")

	// ErrNoAllowedDomains is returned when the domain allow-list is
	// empty. The crawler refuses to run unscoped: an intranet crawl
	// must state its boundary explicitly.
	ErrNoAllowedDomains = errors.New("no allowed domains configured: crawl scope must be explicit")

	// ErrUnknownAlgorithm is returned when the traversal algorithm is
	// neither breadth-first nor depth-first.
	ErrUnknownAlgorithm = errors.New(`unknown traversal algorithm: use "bfs" or "dfs"`)

	// ErrInvalidMaxPages is returned when the page budget is not positive.
	ErrInvalidMaxPages = errors.New("invalid max pages: must be positive")

	// ErrInvalidMaxDepth is returned when the depth limit is negative.
	// Zero is valid and crawls only the seeds.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidCrawlDelay is returned when the crawl delay is negative.
	// Use 0 for no politeness delay.
	ErrInvalidCrawlDelay = errors.New("invalid crawl delay: must be non-negative")

	// ErrInvalidTimeout is returned when the fetch timeout is not
	// positive. A zero timeout would fail every request immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidFetchWorkers is returned when the worker pool size is
	// not positive.
	ErrInvalidFetchWorkers = errors.New("invalid fetch workers: must be positive")

	// ErrInvalidMaxBodySize is returned when the body size cap is
	// negative. Use 0 for the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidCacheTTL is returned when the cache TTL is negative.
	ErrInvalidCacheTTL = errors.New("invalid cache TTL: must be non-negative")
)
