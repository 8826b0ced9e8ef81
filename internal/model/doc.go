// Package model defines the core data structures used throughout intrasearch.
//
// This package contains the following main types:
//   - Page: a crawled web page with content and route provenance
//   - CrawlJob: the run-scoped state of a single crawl
//   - SearchQuery / SearchResult: the query engine's request and response
//   - HistoryEntry / Stats: operator-facing records
//
// Design decision: We separate models into their own package to avoid
// circular dependencies. The crawler, index, query, database, and engine
// packages all need these types, so centralizing them prevents import
// cycles.
//
// The models are designed to be serializable to JSON for CLI output and
// database storage.
package model
