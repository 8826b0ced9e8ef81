package crawler

import (
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// skipElements are HTML subtrees excluded from text extraction.
// Navigation chrome and scripts add noise terms that would dominate
// small intranet pages.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
}

// noTitle is the title recorded for pages without a <title> tag.
const noTitle = "No Title"

// Parser extracts the plain-text body and absolute outbound links from
// fetched HTML.
//
// Design decision: We use golang.org/x/net/html rather than regex
// because:
//  1. It correctly handles the malformed HTML common on intranets
//  2. Skipping whole subtrees (nav, script) needs real tree structure
//  3. More maintainable than complex regex patterns
type Parser struct {
	// baseURL is the page URL, used for resolving relative links.
	baseURL *url.URL
}

// ParseResult holds everything extracted from one HTML page.
type ParseResult struct {
	// Title is the page title, "No Title" when absent.
	Title string

	// Text is the whitespace-normalized plain-text content.
	Text string

	// Links are the absolute outbound URLs in discovery order with
	// fragments stripped and duplicates removed.
	Links []string
}

// NewParser creates a parser for a page at baseURL.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Parser{baseURL: u}, nil
}

// Parse parses HTML content in a single pass.
func (p *Parser) Parse(content io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Title: noTitle}
	var text strings.Builder
	seen := make(map[string]bool)

	// suppressed tracks whether we are inside a subtree excluded from
	// text extraction. Links are still collected there: navigation
	// menus carry much of an intranet's link structure even though
	// their text is noise.
	var walk func(n *html.Node, inBody, suppressed bool)
	walk = func(n *html.Node, inBody, suppressed bool) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					if t := strings.TrimSpace(n.FirstChild.Data); t != "" {
						result.Title = t
					}
				}
				// Title text is handled here, not as body text.
				return
			case "a":
				if href := getAttr(n, "href"); href != "" {
					if resolved := p.resolveLink(href); resolved != "" && !seen[resolved] {
						seen[resolved] = true
						result.Links = append(result.Links, resolved)
					}
				}
			}
			if skipElements[n.Data] {
				suppressed = true
			}
			if n.Data == "body" {
				inBody = true
			}
		case html.TextNode:
			if inBody && !suppressed {
				text.WriteString(n.Data)
				text.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inBody, suppressed)
		}
	}
	walk(doc, false, false)

	// Collapse runs of whitespace so term positions and snippets stay
	// stable regardless of source formatting.
	result.Text = strings.Join(strings.Fields(text.String()), " ")

	return result, nil
}

// resolveLink turns an href into an absolute URL with the fragment
// dropped. Returns "" for links that can never be crawled.
func (p *Parser) resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := p.baseURL.ResolveReference(u)
	// Fragments never change fetched content.
	resolved.Fragment = ""

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
