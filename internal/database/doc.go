// Package database provides SQLite-based storage for intrasearch.
//
// This package implements the SearchDB, which stores:
//   - Crawled pages keyed by canonical URL, including the parent
//     pointers used for route provenance
//   - The append-only search history log
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of
// other databases because:
//  1. No external dependencies - the database is a single file
//  2. CGO-free implementation allows easy cross-compilation
//  3. Sufficient performance for an intranet-scale corpus
//  4. WAL mode provides good concurrent read performance
//
// The inverted index itself is not persisted: it is rebuilt from the
// pages table on startup, which keeps the index and the store trivially
// consistent.
package database
