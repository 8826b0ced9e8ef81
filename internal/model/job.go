package model

import (
	"strings"
	"time"
)

// Algorithm selects the traversal order of a crawl.
type Algorithm string

// Supported traversal algorithms.
const (
	// AlgorithmBFS visits all pages at depth k before any page at
	// depth k+1 (frontier behaves as a FIFO queue).
	AlgorithmBFS Algorithm = "bfs"

	// AlgorithmDFS explores each newly discovered link before returning
	// to its siblings (frontier behaves as a LIFO stack).
	AlgorithmDFS Algorithm = "dfs"
)

// ParseAlgorithm converts a user-supplied string into an Algorithm.
// Matching is case-insensitive. The second return value is false for
// unrecognized input.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bfs", "breadth-first", "breadth":
		return AlgorithmBFS, true
	case "dfs", "depth-first", "depth":
		return AlgorithmDFS, true
	default:
		return "", false
	}
}

// CrawlStatus is the lifecycle state of the crawl state machine.
type CrawlStatus string

// Crawl lifecycle states. A new start from any terminal state resets
// the machine to StatusCrawling.
const (
	// StatusIdle means no crawl has run yet.
	StatusIdle CrawlStatus = "idle"

	// StatusCrawling means a crawl task is currently active.
	StatusCrawling CrawlStatus = "crawling"

	// StatusCompleted means the last crawl ran until its frontier
	// emptied or the page limit was reached.
	StatusCompleted CrawlStatus = "completed"

	// StatusStopped means the last crawl was halted by an operator
	// stop request. The partial index remains queryable.
	StatusStopped CrawlStatus = "stopped"
)

// Terminal reports whether the status allows a new crawl to start.
func (s CrawlStatus) Terminal() bool {
	return s == StatusIdle || s == StatusCompleted || s == StatusStopped
}

// CrawlJob is the run-scoped state of a single crawl.
// It is owned exclusively by the crawl state machine; callers only ever
// see value-type snapshots, so a snapshot can be read while the crawl
// task mutates the live job.
type CrawlJob struct {
	// ID uniquely identifies the crawl run.
	ID string `json:"id"`

	// Algorithm is the traversal order of this run.
	Algorithm Algorithm `json:"algorithm"`

	// SeedURLs are the starting points of the traversal.
	SeedURLs []string `json:"seed_urls"`

	// AllowedDomains restricts the crawl; URLs whose domain is not an
	// exact or dot-suffix match of an entry are never fetched.
	AllowedDomains []string `json:"allowed_domains"`

	// MaxPages caps the number of successfully crawled pages.
	MaxPages int `json:"max_pages"`

	// MaxDepth caps the link distance from a seed.
	MaxDepth int `json:"max_depth"`

	// CrawlDelay is the minimum spacing between fetches to one domain.
	CrawlDelay time.Duration `json:"crawl_delay"`

	// Status is the current lifecycle state.
	Status CrawlStatus `json:"status"`

	// PagesCrawled counts pages fetched and indexed so far.
	PagesCrawled int `json:"pages_crawled"`

	// PagesFailed counts fetch or parse failures. Failed URLs are
	// marked visited and never retried within the run.
	PagesFailed int `json:"pages_failed"`

	// CurrentURL is the URL most recently handed to the fetcher.
	CurrentURL string `json:"current_url,omitempty"`

	// StartTime is when the run began. Zero for StatusIdle.
	StartTime time.Time `json:"start_time,omitzero"`
}

// Snapshot returns a copy of the job safe to hand to concurrent readers.
// Slices are copied so the traversal loop cannot mutate them underneath
// a caller holding the snapshot.
func (j *CrawlJob) Snapshot() CrawlJob {
	cp := *j
	cp.SeedURLs = append([]string(nil), j.SeedURLs...)
	cp.AllowedDomains = append([]string(nil), j.AllowedDomains...)
	return cp
}
