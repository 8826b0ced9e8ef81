package engine

import "errors"

// Engine-level sentinel errors. These are the hard failures of the
// error taxonomy: state errors and request validation errors surface to
// the caller synchronously, unlike fetch and parse failures which the
// crawl recovers from locally.
var (
	// ErrAlreadyRunning is returned by StartCrawl while a crawl is
	// active. At most one CrawlJob exists system-wide.
	ErrAlreadyRunning = errors.New("a crawl is already running")

	// ErrInvalidConfig wraps the specific configuration problem that
	// made StartCrawl reject a job before any fetch.
	ErrInvalidConfig = errors.New("invalid crawl configuration")

	// ErrInvalidLimit is returned by Search for a non-positive result
	// limit.
	ErrInvalidLimit = errors.New("invalid limit: must be positive")

	// ErrHistoryNotFound is returned when deleting a history entry
	// whose id does not exist.
	ErrHistoryNotFound = errors.New("history entry not found")
)
