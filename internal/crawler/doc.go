// Package crawler implements the bounded web traversal at the heart of
// intrasearch.
//
// # Architecture
//
// The Scheduler coordinates the crawl: it owns the frontier and the
// visited set and applies the admission rules (depth limit, page budget,
// domain allow-list). The Frontier interface hides the traversal order:
// a FIFO queue gives breadth-first level coverage, a LIFO stack gives
// depth-first exploration; the scheduler loop is identical for both.
// The Gate enforces politeness with one rate limiter per target domain,
// so parallel fetches to different domains proceed while same-domain
// fetches stay spaced at the crawl delay. The Fetcher retrieves single
// pages with a timeout and classifies failures; the Parser extracts the
// plain-text body and absolute outbound links.
//
// # Components
//
//   - Scheduler: frontier management, admission control, wave fetching
//   - Frontier: queue (BFS) or stack (DFS) to-visit structure
//   - Gate: domain allow-list plus per-domain request delay
//   - Fetcher: single page retrieval with error classification
//   - Parser: HTML to text, title, and outbound links
//
// # Failure handling
//
// Fetch and parse failures are local: the URL is marked visited, the
// failure is logged and counted, and the traversal continues. No single
// page aborts a run; only operator cancellation or limit exhaustion
// ends it.
package crawler
