package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/Schnee111/intrasearch/internal/model"
)

// Default configuration values.
// These are tuned for a small, trusted intranet: conservative politeness,
// modest page budgets, and timeouts suited to nearby servers.
const (
	// DefaultMaxPages caps a crawl run at a modest page budget.
	// Intranet corpora are tens to low thousands of pages; 100 keeps a
	// default run short while remaining useful. Override with --max-pages.
	DefaultMaxPages = 100

	// DefaultMaxDepth of 3 reaches most intranet content: portals link
	// to section indexes which link to articles. Deeper levels are
	// mostly archives and pagination.
	DefaultMaxDepth = 3

	// DefaultCrawlDelay is the minimum spacing between requests to one
	// domain. 1 second is conservative and respectful of shared intranet
	// servers. Can be adjusted via --delay.
	DefaultCrawlDelay = 1 * time.Second

	// DefaultTimeout is the per-request fetch timeout. Intranet servers
	// answer quickly; 30 seconds tolerates slow CMS pages without
	// letting one dead host stall the whole run.
	DefaultTimeout = 30 * time.Second

	// DefaultFetchWorkers bounds parallel fetches during breadth-first
	// crawling. Parallelism only helps across domains (same-domain
	// requests stay serialized by the politeness gate), so a small pool
	// is enough.
	DefaultFetchWorkers = 4

	// DefaultMaxBodySize limits the response body read per page.
	// 5MB is ample for HTML while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies the crawler in server logs.
	// A descriptive User-Agent lets intranet operators recognize and,
	// if needed, rate-limit scanner traffic.
	DefaultUserAgent = "intrasearch/1.0 (+https://github.com/Schnee111/intrasearch)"

	// DefaultCacheTTL is how long a cached result set stays servable.
	// One hour matches how often intranet content typically changes
	// between crawls.
	DefaultCacheTTL = 1 * time.Hour

	// DefaultSearchLimit is the result count when the caller does not
	// specify one.
	DefaultSearchLimit = 10

	// DefaultSnippetLength is the content excerpt size in search results.
	DefaultSnippetLength = 200

	// AppName is the application name used for XDG directory paths.
	AppName = "intrasearch"
)

// Config holds all configuration options for intrasearch.
// It is populated from the YAML config file and CLI flags, then passed
// through the application by dependency injection rather than globals.
//
// Design decision: We use a single flat struct instead of nested structs
// (CrawlConfig, CacheConfig, ...) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// SeedURLs are the starting points of a crawl.
	SeedURLs []string `yaml:"seed_urls"`

	// AllowedDomains is the crawl scope. A URL is admitted when its
	// www-stripped domain equals an entry or is a dot-suffix of one
	// (docs.example.com is admitted by example.com).
	AllowedDomains []string `yaml:"allowed_domains"`

	// Algorithm is the traversal order, "bfs" or "dfs".
	Algorithm string `yaml:"algorithm"`

	// MaxPages caps the number of successfully crawled pages per run.
	MaxPages int `yaml:"max_pages"`

	// MaxDepth caps the link distance from a seed. Depth 0 crawls only
	// the seeds themselves.
	MaxDepth int `yaml:"max_depth"`

	// CrawlDelay is the minimum spacing between fetches to one domain.
	CrawlDelay time.Duration `yaml:"crawl_delay"`

	// Timeout is the per-request fetch timeout.
	Timeout time.Duration `yaml:"timeout"`

	// FetchWorkers bounds parallel fetches in breadth-first crawls.
	// Depth-first traversal is inherently sequential and ignores it.
	FetchWorkers int `yaml:"fetch_workers"`

	// MaxBodySize is the maximum response body size in bytes to read.
	MaxBodySize int64 `yaml:"max_body_size"`

	// UserAgent is the User-Agent header sent with every fetch.
	UserAgent string `yaml:"user_agent"`

	// CacheEnabled toggles the search result cache. When false every
	// lookup is a forced miss and every put is a no-op.
	CacheEnabled bool `yaml:"cache_enabled"`

	// CacheTTL is how long cached result sets stay servable.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// DBDir is the directory holding the SQLite database.
	// Defaults to the XDG data directory for the application.
	DBDir string `yaml:"db_dir"`

	// Verbose enables debug-level logging.
	Verbose bool `yaml:"-"`
}

// NewConfig creates a Config with default values.
// All fields are set to safe, sensible defaults; callers override
// specific values from the config file and CLI flags afterwards.
//
// Design decision: We use a constructor instead of relying on zero
// values because most defaults are non-zero (delays, budgets, limits).
// The constructor also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		Algorithm:    string(model.AlgorithmBFS),
		MaxPages:     DefaultMaxPages,
		MaxDepth:     DefaultMaxDepth,
		CrawlDelay:   DefaultCrawlDelay,
		Timeout:      DefaultTimeout,
		FetchWorkers: DefaultFetchWorkers,
		MaxBodySize:  DefaultMaxBodySize,
		UserAgent:    DefaultUserAgent,
		CacheEnabled: true,
		CacheTTL:     DefaultCacheTTL,
		DBDir:        XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for intrasearch.
// On Linux: ~/.local/share/intrasearch
// On macOS: ~/Library/Application Support/intrasearch
// On Windows: %LOCALAPPDATA%\intrasearch
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for intrasearch.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks crawl parameters before any fetch happens.
// It returns the first problem found; fixing one error often makes
// later ones irrelevant.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast with a clear message. This runs once after
// flag parsing, before the state machine accepts the job.
func (c *Config) Validate() error {
	if len(c.SeedURLs) == 0 {
		return ErrNoSeeds
	}
	if len(c.AllowedDomains) == 0 {
		return ErrNoAllowedDomains
	}
	if _, ok := model.ParseAlgorithm(c.Algorithm); !ok {
		return ErrUnknownAlgorithm
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.CrawlDelay < 0 {
		return ErrInvalidCrawlDelay
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.FetchWorkers <= 0 {
		return ErrInvalidFetchWorkers
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.CacheTTL < 0 {
		return ErrInvalidCacheTTL
	}
	return nil
}

// TraversalAlgorithm returns the parsed traversal algorithm.
// Call Validate first; unrecognized strings fall back to breadth-first.
func (c *Config) TraversalAlgorithm() model.Algorithm {
	alg, ok := model.ParseAlgorithm(c.Algorithm)
	if !ok {
		return model.AlgorithmBFS
	}
	return alg
}
