package config

import (
	"errors"
	"testing"
	"time"

	"github.com/Schnee111/intrasearch/internal/model"
)

// validConfig returns a configuration that passes validation.
func validConfig() *Config {
	cfg := NewConfig()
	cfg.SeedURLs = []string{"http://wiki.example.com"}
	cfg.AllowedDomains = []string{"example.com"}
	return cfg
}

// TestConfigValidate tests crawl parameter validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid config passes", func(t *testing.T) {
		t.Parallel()

		if err := validConfig().Validate(); err != nil {
			t.Errorf("unexpected validation error: %v", err)
		}
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "no seeds",
			mutate:  func(c *Config) { c.SeedURLs = nil },
			wantErr: ErrNoSeeds,
		},
		{
			name:    "no allowed domains",
			mutate:  func(c *Config) { c.AllowedDomains = nil },
			wantErr: ErrNoAllowedDomains,
		},
		{
			name:    "unknown algorithm",
			mutate:  func(c *Config) { c.Algorithm = "dijkstra" },
			wantErr: ErrUnknownAlgorithm,
		},
		{
			name:    "zero max pages",
			mutate:  func(c *Config) { c.MaxPages = 0 },
			wantErr: ErrInvalidMaxPages,
		},
		{
			name:    "negative max depth",
			mutate:  func(c *Config) { c.MaxDepth = -1 },
			wantErr: ErrInvalidMaxDepth,
		},
		{
			name:    "negative crawl delay",
			mutate:  func(c *Config) { c.CrawlDelay = -time.Second },
			wantErr: ErrInvalidCrawlDelay,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.FetchWorkers = 0 },
			wantErr: ErrInvalidFetchWorkers,
		},
		{
			name:    "negative cache ttl",
			mutate:  func(c *Config) { c.CacheTTL = -time.Minute },
			wantErr: ErrInvalidCacheTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestConfigDefaults tests the defaults set by NewConfig.
func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Algorithm != string(model.AlgorithmBFS) {
		t.Errorf("expected default algorithm bfs, got %q", cfg.Algorithm)
	}
	if cfg.MaxPages != DefaultMaxPages {
		t.Errorf("expected max pages %d, got %d", DefaultMaxPages, cfg.MaxPages)
	}
	if cfg.MaxDepth != DefaultMaxDepth {
		t.Errorf("expected max depth %d, got %d", DefaultMaxDepth, cfg.MaxDepth)
	}
	if !cfg.CacheEnabled {
		t.Error("expected cache enabled by default")
	}
	if cfg.CacheTTL != DefaultCacheTTL {
		t.Errorf("expected cache ttl %s, got %s", DefaultCacheTTL, cfg.CacheTTL)
	}
	if cfg.DBDir == "" {
		t.Error("expected a default database directory")
	}
}

// TestTraversalAlgorithm tests algorithm selection with fallback.
func TestTraversalAlgorithm(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Algorithm = "dfs"
	if got := cfg.TraversalAlgorithm(); got != model.AlgorithmDFS {
		t.Errorf("expected dfs, got %q", got)
	}

	cfg.Algorithm = "bogus"
	if got := cfg.TraversalAlgorithm(); got != model.AlgorithmBFS {
		t.Errorf("expected bfs fallback, got %q", got)
	}
}
