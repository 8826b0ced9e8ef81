package report

import (
	"encoding/json"
	"io"

	"github.com/Schnee111/intrasearch/internal/model"
)

// JSONWriter outputs results, statistics and history in JSON format.
// This format is designed for tool integration and programmatic
// processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// resultsEnvelope pairs the raw query with its response so consumers
// can correlate output when piping multiple searches.
type resultsEnvelope struct {
	Query string `json:"query"`
	*model.SearchResponse
}

// WriteResults renders the result set as a JSON document.
func (w *JSONWriter) WriteResults(rawQuery string, resp *model.SearchResponse) (int, error) {
	return w.writeJSON(resultsEnvelope{Query: rawQuery, SearchResponse: resp})
}

// WriteStats renders the statistics as a JSON document.
func (w *JSONWriter) WriteStats(stats *model.Stats) (int, error) {
	return w.writeJSON(stats)
}

// WriteHistory renders the history entries as a JSON array.
func (w *JSONWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return w.writeJSON(entries)
}

// writeJSON marshals v according to the indent settings and writes it
// followed by a trailing newline.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	n, err := w.output.Write(data)
	if err != nil {
		return n, err
	}

	m, err := io.WriteString(w.output, "\n")
	return n + m, err
}
