package model

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// Page represents a single crawled web page.
// It holds the extracted plain-text content together with the traversal
// bookkeeping that makes route provenance reconstruction possible.
//
// Design decision: We store DiscoveredVia as a plain URL string rather
// than a pointer to another Page because:
//  1. Pages form a lookup table keyed by canonical URL, not a pointer graph
//  2. A weak reference survives serialization to the database unchanged
//  3. Route reconstruction becomes a bounded walk over lookup keys
type Page struct {
	// URL is the canonical URL of the page. It is the unique key for
	// the page in both the visited set and the page store.
	URL string `json:"url"`

	// Title is the page title from the <title> tag, or "No Title" when
	// the page has none.
	Title string `json:"title"`

	// Content is the extracted plain-text body of the page with markup,
	// scripts, and navigation chrome removed.
	Content string `json:"content"`

	// RawLinks are the absolute outbound URLs in discovery order.
	// Duplicates are removed but first-seen order is preserved.
	RawLinks []string `json:"raw_links"`

	// Depth is the link distance from the seed that discovered this page.
	// Seeds have depth 0.
	Depth int `json:"depth"`

	// DiscoveredVia is the canonical URL of the parent page whose link
	// led to this page. Empty for seed pages.
	DiscoveredVia string `json:"discovered_via,omitempty"`

	// LastCrawled is the time the page was fetched.
	LastCrawled time.Time `json:"last_crawled"`

	// StatusCode is the HTTP response status code of the fetch.
	StatusCode int `json:"status_code"`
}

// IsSeed reports whether the page was crawled as a seed URL.
func (p *Page) IsSeed() bool {
	return p.DiscoveredVia == ""
}

// Domain returns the lowercased host of the page URL without a leading
// "www." prefix. Returns an empty string for unparseable URLs.
func (p *Page) Domain() string {
	return URLDomain(p.URL)
}

// Snippet returns the leading excerpt of the page content, with "..."
// appended when the content was truncated.
func (p *Page) Snippet(n int) string {
	return Excerpt(p.Content, n)
}

// Excerpt returns at most n bytes of s, cut back to a rune boundary so
// the result is always valid UTF-8, with "..." appended when s was
// truncated.
func Excerpt(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// RouteStep is one hop of the provenance route from a seed page to a
// target page.
type RouteStep struct {
	// URL is the canonical URL of the page at this step.
	URL string `json:"url"`

	// Title is the page title at this step.
	Title string `json:"title"`
}

// URLDomain extracts the comparable domain from a raw URL: lowercased
// host with any leading "www." stripped. The same normalization is
// applied to allow-list entries and to the domain filter of a search,
// so all three compare consistently.
func URLDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// CanonicalURL normalizes a URL for visited-set deduplication and page
// store keying. Two URLs that differ only by fragment or trailing slash
// canonicalize to the same string.
//
// Design decision: We normalize rather than store URLs as-is because:
//  1. The same page is commonly linked with and without a trailing slash
//  2. Fragments never change the fetched content
//  3. A single canonical key keeps the visited set and store consistent
func CanonicalURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	// "/" and "" address the same resource; deeper paths lose the
	// trailing slash so /docs/ and /docs collapse to one key.
	u.Path = strings.TrimRight(u.Path, "/")

	return u.String()
}
