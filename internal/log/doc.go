// Package log provides logger construction for intrasearch, built on the
// standard slog package.
//
// The TruncatingHandler caps oversized string attribute values before they
// reach the underlying handler. Crawl and index logging regularly carries
// page content, titles, and long URLs; capping at the handler level keeps
// call sites simple and log output readable.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
