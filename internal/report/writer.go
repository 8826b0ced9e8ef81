package report

import (
	"io"
	"sort"

	"github.com/Schnee111/intrasearch/internal/model"
)

// Writer defines the interface for rendering search output.
// Implementations format results, statistics and history in various
// formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// WriteResults renders a ranked result set for the given raw query.
	// Returns the number of bytes written and any error encountered.
	WriteResults(rawQuery string, resp *model.SearchResponse) (int, error)

	// WriteStats renders the engine statistics summary.
	WriteStats(stats *model.Stats) (int, error)

	// WriteHistory renders past searches, newest first.
	WriteHistory(entries []model.HistoryEntry) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// WriteResults renders the result set with all configured Writers.
// Returns the total bytes written. Stops on first error encountered.
func (m *MultiWriter) WriteResults(rawQuery string, resp *model.SearchResponse) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteResults(rawQuery, resp)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteStats renders the statistics with all configured Writers.
func (m *MultiWriter) WriteStats(stats *model.Stats) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteStats(stats)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteHistory renders the history with all configured Writers.
func (m *MultiWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteHistory(entries)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// sortedDomains returns the domain names in descending page-count
// order, ties broken alphabetically, so output is deterministic.
func sortedDomains(counts map[string]int) []string {
	domains := make([]string, 0, len(counts))
	for domain := range counts {
		domains = append(domains, domain)
	}
	sort.Slice(domains, func(i, j int) bool {
		if counts[domains[i]] != counts[domains[j]] {
			return counts[domains[i]] > counts[domains[j]]
		}
		return domains[i] < domains[j]
	})
	return domains
}
