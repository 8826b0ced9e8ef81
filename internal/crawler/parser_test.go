package crawler

import (
	"strings"
	"testing"
)

// mustParse parses HTML with a parser rooted at baseURL.
func mustParse(t *testing.T, baseURL, content string) *ParseResult {
	t.Helper()

	parser, err := NewParser(baseURL)
	if err != nil {
		t.Fatalf("failed to create parser: %v", err)
	}
	result, err := parser.Parse(strings.NewReader(content))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return result
}

// TestParserTitle tests title extraction and its fallback.
func TestParserTitle(t *testing.T) {
	t.Parallel()

	t.Run("extracts title", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/page",
			`<html><head><title>  Deploy Guide  </title></head><body></body></html>`)

		if result.Title != "Deploy Guide" {
			t.Errorf("expected title 'Deploy Guide', got %q", result.Title)
		}
	})

	t.Run("missing title falls back", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/page",
			`<html><body><p>content</p></body></html>`)

		if result.Title != "No Title" {
			t.Errorf("expected 'No Title', got %q", result.Title)
		}
	})

	t.Run("empty title falls back", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/page",
			`<html><head><title>   </title></head><body></body></html>`)

		if result.Title != "No Title" {
			t.Errorf("expected 'No Title', got %q", result.Title)
		}
	})
}

// TestParserText tests plain-text extraction with chrome removal.
func TestParserText(t *testing.T) {
	t.Parallel()

	t.Run("skips script style and navigation chrome", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/",
			`<html><body>
				<nav>Home About Contact</nav>
				<header>Site Header</header>
				<script>var x = "scripted";</script>
				<style>.a { color: red }</style>
				<p>Actual article text.</p>
				<aside>Related links</aside>
				<footer>Copyright notice</footer>
			</body></html>`)

		if result.Text != "Actual article text." {
			t.Errorf("expected only article text, got %q", result.Text)
		}
	})

	t.Run("ignores head text", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/",
			`<html><head><title>T</title><meta name="x"></head><body><p>body text</p></body></html>`)

		if result.Text != "body text" {
			t.Errorf("expected 'body text', got %q", result.Text)
		}
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/",
			"<html><body><p>one\n\n  two</p>\t<p>three</p></body></html>")

		if result.Text != "one two three" {
			t.Errorf("expected 'one two three', got %q", result.Text)
		}
	})
}

// TestParserLinks tests link extraction and resolution.
func TestParserLinks(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative links", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/docs/index.html",
			`<html><body>
				<a href="/a">root relative</a>
				<a href="b.html">document relative</a>
				<a href="http://other.example.com/c">absolute</a>
			</body></html>`)

		want := []string{
			"http://wiki.example.com/a",
			"http://wiki.example.com/docs/b.html",
			"http://other.example.com/c",
		}
		if len(result.Links) != len(want) {
			t.Fatalf("expected %d links, got %d: %v", len(want), len(result.Links), result.Links)
		}
		for i, link := range want {
			if result.Links[i] != link {
				t.Errorf("link %d = %q, want %q", i, result.Links[i], link)
			}
		}
	})

	t.Run("collects links inside navigation chrome", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/",
			`<html><body><nav><a href="/section">Section</a></nav></body></html>`)

		if len(result.Links) != 1 || result.Links[0] != "http://wiki.example.com/section" {
			t.Errorf("expected nav link collected, got %v", result.Links)
		}
	})

	t.Run("drops fragments and deduplicates", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/",
			`<html><body>
				<a href="/page#intro">intro</a>
				<a href="/page#usage">usage</a>
				<a href="/page">plain</a>
			</body></html>`)

		if len(result.Links) != 1 {
			t.Errorf("expected fragment variants to collapse to 1 link, got %v", result.Links)
		}
	})

	t.Run("skips non-crawlable schemes", func(t *testing.T) {
		t.Parallel()

		result := mustParse(t, "http://wiki.example.com/",
			`<html><body>
				<a href="javascript:void(0)">js</a>
				<a href="mailto:it@example.com">mail</a>
				<a href="tel:+1234">phone</a>
				<a href="#">self</a>
				<a href="ftp://example.com/f">ftp</a>
				<a href="/keep">keep</a>
			</body></html>`)

		if len(result.Links) != 1 || result.Links[0] != "http://wiki.example.com/keep" {
			t.Errorf("expected only the http link, got %v", result.Links)
		}
	})
}
