package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/Schnee111/intrasearch/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteResults renders the result set as a Markdown document.
func (w *MarkdownWriter) WriteResults(rawQuery string, resp *model.SearchResponse) (int, error) {
	md := markdown.NewMarkdown(w.output)

	if strings.TrimSpace(rawQuery) == "" {
		md.H1("Indexed Pages")
	} else {
		md.H1f("Search Results: %s", rawQuery)
	}
	md.PlainText("")

	source := "index"
	if resp.Cached {
		source = "cache"
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Total Found", strconv.Itoa(resp.TotalFound)},
			{"Returned", strconv.Itoa(len(resp.Results))},
			{"Served From", source},
			{"Execution Time", formatDuration(resp.ExecutionTime)},
		},
	})
	md.PlainText("")

	if len(resp.Results) == 0 {
		md.Note("No matching pages.")
		return len(md.String()), md.Build()
	}

	for i, result := range resp.Results {
		w.writeResult(md, i+1, result)
	}

	return len(md.String()), md.Build()
}

// writeResult renders one ranked hit as a section.
func (w *MarkdownWriter) writeResult(md *markdown.Markdown, rank int, result model.SearchResult) {
	md.H2f("%d. %s", rank, result.Title)
	md.PlainText("")
	md.PlainTextf("<%s>", result.URL)
	md.PlainText("")
	md.PlainTextf("Score: `%.4f`", result.SimilarityScore)
	md.PlainText("")

	if result.ContentSnippet != "" {
		md.Blockquote(result.ContentSnippet)
		md.PlainText("")
	}

	if len(result.Route) > 1 {
		steps := make([]string, 0, len(result.Route))
		for _, step := range result.Route {
			if step.Title != "" {
				steps = append(steps, fmt.Sprintf("[%s](%s)", step.Title, step.URL))
			} else {
				steps = append(steps, step.URL)
			}
		}
		md.PlainTextf("Route: %s", strings.Join(steps, " > "))
		md.PlainText("")
	}
}

// WriteStats renders the statistics as a Markdown document, including
// a mermaid pie chart of the per-domain page distribution.
func (w *MarkdownWriter) WriteStats(stats *model.Stats) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Intrasearch Statistics")
	md.PlainText("")

	lastCrawl := "-"
	if !stats.LastCrawl.IsZero() {
		lastCrawl = stats.LastCrawl.Format("2006-01-02 15:04:05 MST")
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Indexed Pages", strconv.Itoa(stats.TotalPages)},
			{"Vocabulary Size", strconv.Itoa(stats.VocabularySize)},
			{"Total Searches", strconv.Itoa(stats.TotalSearches)},
			{"Cached Queries", strconv.Itoa(stats.CachedQueries)},
			{"Crawl Status", string(stats.CrawlStatus)},
			{"Last Crawl", lastCrawl},
		},
	})
	md.PlainText("")

	if len(stats.DomainCounts) > 0 {
		w.writeDomainChart(md, stats.DomainCounts)
	}

	if stats.TotalPages == 0 {
		md.Tip("The index is empty. Run a crawl to populate it.")
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// writeDomainChart writes a mermaid pie chart of pages per domain.
func (w *MarkdownWriter) writeDomainChart(md *markdown.Markdown, counts map[string]int) {
	md.H2("Pages per Domain")
	md.PlainText("")

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Page Distribution"),
		piechart.WithShowData(true),
	)
	for _, domain := range sortedDomains(counts) {
		chart.LabelAndIntValue(domain, uint64(counts[domain]))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// WriteHistory renders past searches as a Markdown table.
func (w *MarkdownWriter) WriteHistory(entries []model.HistoryEntry) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Search History")
	md.PlainText("")

	if len(entries) == 0 {
		md.Note("No searches recorded yet.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(entries))
	for i, entry := range entries {
		filter := entry.DomainFilter
		if filter == "" {
			filter = "-"
		}
		cached := "no"
		if entry.Cached {
			cached = "yes"
		}
		rows[i] = []string{
			strconv.FormatInt(entry.ID, 10),
			entry.Query,
			filter,
			strconv.Itoa(entry.ResultCount),
			formatDuration(entry.ExecutionTime),
			cached,
			entry.SearchedAt.Format("2006-01-02 15:04:05"),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Query", "Domain", "Results", "Time", "Cached", "Searched At"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}
