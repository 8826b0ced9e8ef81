package crawler

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Schnee111/intrasearch/internal/model"
)

// Gate enforces the two admission rules of a crawl run: the domain
// allow-list and the per-domain request delay.
//
// Design decision: The delay is enforced per target domain, not
// globally, using one rate.Limiter per domain. Parallel fetches to
// different domains proceed immediately while same-domain fetches stay
// serialized at crawlDelay spacing.
type Gate struct {
	// allowed holds the normalized allow-list entries (lowercased,
	// "www." stripped).
	allowed []string

	// delay is the minimum spacing between fetches to one domain.
	delay time.Duration

	// mu protects limiters.
	mu sync.Mutex

	// limiters maps a domain to its request limiter, created lazily on
	// the first fetch to that domain.
	limiters map[string]*rate.Limiter
}

// NewGate creates a Gate for the given allow-list and delay.
// Allow-list entries are normalized the same way page domains are, so
// "WWW.Example.COM" and "example.com" scope identically.
func NewGate(allowedDomains []string, delay time.Duration) *Gate {
	allowed := make([]string, 0, len(allowedDomains))
	for _, d := range allowedDomains {
		d = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(d)), "www.")
		if d != "" {
			allowed = append(allowed, d)
		}
	}
	return &Gate{
		allowed:  allowed,
		delay:    delay,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allowed reports whether a URL may be crawled at all: it must be an
// absolute http(s) URL whose domain matches an allow-list entry, either
// exactly or as a dot-suffix (docs.example.com matches example.com).
func (g *Gate) Allowed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}

	domain := model.URLDomain(rawURL)
	for _, a := range g.allowed {
		if domain == a || strings.HasSuffix(domain, "."+a) {
			return true
		}
	}
	return false
}

// Wait blocks until a fetch to the URL's domain is permitted, or until
// the context is cancelled. The first fetch to a domain proceeds
// immediately; later ones are spaced at least one crawl delay apart.
func (g *Gate) Wait(ctx context.Context, rawURL string) error {
	if g.delay <= 0 {
		return ctx.Err()
	}
	return g.limiter(model.URLDomain(rawURL)).Wait(ctx)
}

// limiter returns the rate limiter for a domain, creating it on first use.
func (g *Gate) limiter(domain string) *rate.Limiter {
	g.mu.Lock()
	defer g.mu.Unlock()

	l, ok := g.limiters[domain]
	if !ok {
		// Burst 1: exactly one request per delay window per domain.
		l = rate.NewLimiter(rate.Every(g.delay), 1)
		g.limiters[domain] = l
	}
	return l
}
