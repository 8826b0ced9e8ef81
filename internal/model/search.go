package model

import "time"

// SearchQuery is the normalized form of a search request.
// It is ephemeral: built per request, never stored.
type SearchQuery struct {
	// Terms are the normalized query tokens, produced by the same
	// normalizer used at indexing time so vocabularies align.
	Terms []string

	// DomainFilter, when non-empty, restricts candidate documents to
	// pages whose domain matches it (after www-stripping).
	DomainFilter string

	// Limit is the maximum number of results to return. Must be positive.
	Limit int
}

// Empty reports whether the query carries no searchable terms.
// An empty query is a listing operation, not a search: it returns every
// indexed page in insertion order with a zero score and bypasses the
// result cache entirely.
func (q SearchQuery) Empty() bool {
	return len(q.Terms) == 0
}

// SearchResult is a single ranked hit. Immutable once returned.
type SearchResult struct {
	// URL is the canonical URL of the matched page.
	URL string `json:"url"`

	// Title is the page title.
	Title string `json:"title"`

	// ContentSnippet is a short excerpt of the page content.
	ContentSnippet string `json:"content_snippet"`

	// SimilarityScore is the cosine similarity between the query and
	// document TF-IDF vectors, in [0.0, 1.0].
	SimilarityScore float64 `json:"similarity_score"`

	// Route is the provenance path from a seed page to this page,
	// reconstructed on demand from parent pointers.
	Route []RouteStep `json:"route"`

	// LastCrawled is when the page was last fetched.
	LastCrawled time.Time `json:"last_crawled"`
}

// SearchResponse is the full answer to a search request.
type SearchResponse struct {
	// Results are the ranked hits, truncated to the query limit.
	Results []SearchResult `json:"results"`

	// TotalFound is the number of matches before limit truncation.
	TotalFound int `json:"total_found"`

	// Cached reports whether the results were served from the cache.
	Cached bool `json:"cached"`

	// ExecutionTime is how long the lookup took.
	ExecutionTime time.Duration `json:"execution_time"`
}

// HistoryEntry is one append-only record of a performed search.
type HistoryEntry struct {
	// ID is the auto-increment identifier assigned by the store.
	ID int64 `json:"id"`

	// Query is the raw query text as submitted.
	Query string `json:"query"`

	// DomainFilter is the filter applied, if any.
	DomainFilter string `json:"domain_filter,omitempty"`

	// ResultCount is how many results the search produced.
	ResultCount int `json:"result_count"`

	// ExecutionTime is how long the search took.
	ExecutionTime time.Duration `json:"execution_time"`

	// Cached reports whether the search was served from the cache.
	Cached bool `json:"cached"`

	// SearchedAt is when the search was performed.
	SearchedAt time.Time `json:"searched_at"`
}

// Stats summarizes the state of the engine for operators.
type Stats struct {
	// TotalPages is the number of pages in the index.
	TotalPages int `json:"total_pages"`

	// TotalSearches is the number of history records.
	TotalSearches int `json:"total_searches"`

	// CachedQueries is the number of live (unexpired) cache entries.
	CachedQueries int `json:"cached_queries"`

	// VocabularySize is the number of distinct indexed terms.
	VocabularySize int `json:"vocabulary_size"`

	// DomainCounts maps each crawled domain to its page count.
	DomainCounts map[string]int `json:"domain_counts"`

	// LastCrawl is the most recent page fetch time, zero when the
	// index is empty.
	LastCrawl time.Time `json:"last_crawl,omitzero"`

	// CrawlStatus is the current state of the crawl state machine.
	CrawlStatus CrawlStatus `json:"crawl_status"`
}
