// Package query ranks indexed documents against keyword queries.
//
// The Engine vectorizes a normalized query with the index's idf values
// and scores every candidate document by cosine similarity, breaking
// ties by crawl recency. The Cache keeps recently computed result sets
// servable for a TTL so repeat queries skip re-scoring entirely.
//
// The empty query is a deliberate carve-out inherited from the
// product's UI: it lists all indexed pages in insertion order at score
// zero and never touches the cache.
package query
