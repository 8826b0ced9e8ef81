// Package index maintains the in-memory inverted index over crawled
// pages: term postings, per-document term-frequency vectors, and global
// document frequencies, with TF-IDF weighting.
//
// The index is rebuilt from the page store at startup and updated
// incrementally as a crawl progresses. Writes and reads are mutually
// exclusive through an internal RWMutex, so the query engine can score
// against a consistent view while a crawl is indexing.
package index
