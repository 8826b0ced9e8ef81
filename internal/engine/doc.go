// Package engine wires the crawler, the search index, the result cache
// and the persistent store behind a single facade.
//
// The Engine type is the only entry point the CLI uses. It enforces the
// one-crawl-at-a-time invariant through an internal state machine
// (idle, crawling, completed, stopped), keeps the in-memory index in
// sync with the pages table, and routes every search through the
// normalizer, the cache and the history log in a fixed order.
//
// Crawls run in a background goroutine. StartCrawl returns a job ID
// immediately; callers poll GetCrawlStatus, block on Wait, or request
// a graceful stop with StopCrawl. A stopped crawl keeps everything it
// indexed before the stop.
package engine
