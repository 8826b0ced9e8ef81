// Package config provides configuration structures and utilities for
// intrasearch. It defines crawl parameters (seeds, scope, traversal,
// politeness), search settings (cache, limits), and storage locations,
// with YAML file loading and validation.
package config
