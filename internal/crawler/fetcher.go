package crawler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// FetchErrorKind classifies how a page retrieval failed.
// The classification drives logging only: every kind is recovered
// locally by the traversal, which marks the URL visited-but-failed and
// moves on.
type FetchErrorKind string

// Fetch failure classes.
const (
	// FetchTimeout means the request exceeded the fetch timeout.
	FetchTimeout FetchErrorKind = "timeout"

	// FetchNetwork means the request failed below HTTP: DNS, refused
	// connection, reset, and similar transport errors.
	FetchNetwork FetchErrorKind = "network"

	// FetchStatus means the server answered with a non-2xx status.
	FetchStatus FetchErrorKind = "status"

	// FetchParse means the response body could not be parsed as HTML.
	FetchParse FetchErrorKind = "parse"
)

// FetchError describes a failed page retrieval.
type FetchError struct {
	// URL is the URL that failed.
	URL string

	// Kind classifies the failure.
	Kind FetchErrorKind

	// StatusCode is the HTTP status for FetchStatus errors, 0 otherwise.
	StatusCode int

	// Err is the underlying error, nil for FetchStatus.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Kind == FetchStatus {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher performs single page retrievals with a timeout, a body size
// cap, and failure classification.
type Fetcher struct {
	// client is the HTTP client used for all requests.
	client *http.Client

	// userAgent is the User-Agent header to send.
	userAgent string

	// maxBodySize limits how many response bytes are read.
	maxBodySize int64
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// NewFetcher creates a Fetcher with a 30 second timeout, a 5MB body cap,
// and a descriptive User-Agent unless overridden by options.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      &http.Client{Timeout: 30 * time.Second},
		userAgent:   "intrasearch/1.0",
		maxBodySize: 5 * 1024 * 1024,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchResult is the outcome of a successful retrieval.
type FetchResult struct {
	// Body is the response body, truncated to the size cap.
	Body string

	// StatusCode is the HTTP status code (always 2xx here).
	StatusCode int

	// ContentType is the Content-Type response header.
	ContentType string
}

// Fetch retrieves a single URL. Any failure is returned as a *FetchError
// carrying its classification; the traversal logs it and continues.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: FetchNetwork, Err: err}
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: classifyTransport(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: pageURL, Kind: FetchStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, &FetchError{URL: pageURL, Kind: classifyTransport(err), Err: err}
	}

	return &FetchResult{
		Body:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// classifyTransport distinguishes timeouts from other transport failures.
func classifyTransport(err error) FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchTimeout
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchTimeout
	}
	return FetchNetwork
}
