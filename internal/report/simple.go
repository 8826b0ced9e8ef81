package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Schnee111/intrasearch/internal/model"
)

// SimpleWriter outputs human-readable text for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// showRoutes controls whether the seed-to-page route is printed
	// under each result.
	showRoutes bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithRoutes enables printing the discovery route under each result.
func WithRoutes(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showRoutes = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		showRoutes: true,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteResults renders a ranked result set in human-readable format.
func (w *SimpleWriter) WriteResults(rawQuery string, resp *model.SearchResponse) (int, error) {
	var sb strings.Builder

	if strings.TrimSpace(rawQuery) == "" {
		sb.WriteString(fmt.Sprintf("Indexed pages (%d total)\n", resp.TotalFound))
	} else {
		sb.WriteString(fmt.Sprintf("Results for %q (%d found", rawQuery, resp.TotalFound))
		if resp.Cached {
			sb.WriteString(", cached")
		}
		sb.WriteString(fmt.Sprintf(", %s)\n", formatDuration(resp.ExecutionTime)))
	}
	sb.WriteString("\n")

	if len(resp.Results) == 0 {
		sb.WriteString("  No matching pages.\n")
		return w.output.Write([]byte(sb.String()))
	}

	for i, result := range resp.Results {
		w.writeResult(&sb, i+1, result)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeResult renders a single ranked hit.
func (w *SimpleWriter) writeResult(sb *strings.Builder, rank int, result model.SearchResult) {
	sb.WriteString(fmt.Sprintf("%2d. %s\n", rank, result.Title))
	sb.WriteString(fmt.Sprintf("    %s\n", result.URL))
	sb.WriteString(fmt.Sprintf("    score: %.4f", result.SimilarityScore))
	if !result.LastCrawled.IsZero() {
		sb.WriteString(fmt.Sprintf("  crawled: %s", result.LastCrawled.Format("2006-01-02 15:04")))
	}
	sb.WriteString("\n")

	if result.ContentSnippet != "" {
		sb.WriteString(fmt.Sprintf("    %s\n", result.ContentSnippet))
	}

	if w.showRoutes && len(result.Route) > 1 {
		sb.WriteString(fmt.Sprintf("    route: %s\n", formatRoute(result.Route)))
	}

	sb.WriteString("\n")
}

// WriteStats renders the engine statistics summary.
func (w *SimpleWriter) WriteStats(stats *model.Stats) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("-", 50))
	sb.WriteString("\n")
	sb.WriteString("INTRASEARCH STATISTICS\n")
	sb.WriteString(strings.Repeat("-", 50))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Indexed pages:    %d\n", stats.TotalPages))
	sb.WriteString(fmt.Sprintf("Vocabulary size:  %d terms\n", stats.VocabularySize))
	sb.WriteString(fmt.Sprintf("Total searches:   %d\n", stats.TotalSearches))
	sb.WriteString(fmt.Sprintf("Cached queries:   %d\n", stats.CachedQueries))
	sb.WriteString(fmt.Sprintf("Crawl status:     %s\n", stats.CrawlStatus))

	if !stats.LastCrawl.IsZero() {
		sb.WriteString(fmt.Sprintf("Last crawl:       %s\n", stats.LastCrawl.Format("2006-01-02 15:04:05 MST")))
	}

	if len(stats.DomainCounts) > 0 {
		sb.WriteString("\nPages per domain:\n")
		for _, domain := range sortedDomains(stats.DomainCounts) {
			sb.WriteString(fmt.Sprintf("  %-30s %d\n", domain, stats.DomainCounts[domain]))
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteHistory renders past searches, newest first.
func (w *SimpleWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	var sb strings.Builder

	if len(entries) == 0 {
		sb.WriteString("No search history.\n")
		return w.output.Write([]byte(sb.String()))
	}

	sb.WriteString(fmt.Sprintf("Search history (%d entries)\n\n", len(entries)))

	for _, entry := range entries {
		sb.WriteString(fmt.Sprintf("[%d] %q", entry.ID, entry.Query))
		if entry.DomainFilter != "" {
			sb.WriteString(fmt.Sprintf(" on %s", entry.DomainFilter))
		}
		sb.WriteString(fmt.Sprintf(" - %d results, %s", entry.ResultCount, formatDuration(entry.ExecutionTime)))
		if entry.Cached {
			sb.WriteString(" (cached)")
		}
		sb.WriteString(fmt.Sprintf("\n    at %s\n", entry.SearchedAt.Format("2006-01-02 15:04:05")))
	}

	return w.output.Write([]byte(sb.String()))
}

// formatRoute joins a route into "seed -> ... -> page" form using titles
// when present, URLs otherwise.
func formatRoute(route []model.RouteStep) string {
	parts := make([]string, 0, len(route))
	for _, step := range route {
		if step.Title != "" {
			parts = append(parts, step.Title)
		} else {
			parts = append(parts, step.URL)
		}
	}
	return strings.Join(parts, " -> ")
}

// formatDuration renders small durations at millisecond precision,
// which reads better than Go's default sub-millisecond noise.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}
	return d.Round(10 * time.Millisecond).String()
}
