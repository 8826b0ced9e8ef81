package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".intrasearch"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads configuration overrides from a YAML file into cfg.
// Only keys present in the file replace values already in cfg, so CLI
// flag handling can layer on top afterwards.
// If the file does not exist, it returns ErrConfigNotFound; callers
// decide whether that is fatal based on whether the path was explicit.
func LoadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return ErrConfigNotFound
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}
	return nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .intrasearch in the current directory
//  3. Look for .intrasearch in the user's home directory
//
// Returns the path to the configuration file, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// DefaultConfigYAML is a commented starter configuration written by the
// init command.
const DefaultConfigYAML = `# intrasearch configuration
#
# Crawl scope. A URL is crawled only when its domain matches an entry
# below (exact or dot-suffix match, "www." ignored).
seed_urls:
  - https://intranet.example.com
allowed_domains:
  - example.com

# Traversal: bfs (level order) or dfs (explore each branch fully first).
algorithm: bfs

max_pages: 100
max_depth: 3

# Minimum spacing between requests to the same domain.
crawl_delay: 1s
timeout: 30s
fetch_workers: 4

# Search result cache.
cache_enabled: true
cache_ttl: 1h
`

// WriteDefaultConfigFile writes the starter configuration to path.
// It refuses to overwrite an existing file.
func WriteDefaultConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return os.ErrExist
	}
	return os.WriteFile(path, []byte(DefaultConfigYAML), 0600)
}
