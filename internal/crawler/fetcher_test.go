package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetcher tests single page retrieval.
func TestFetcher(t *testing.T) {
	t.Parallel()

	t.Run("fetches page body and status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html><body>hello</body></html>"))
		}))
		defer server.Close()

		fetcher := NewFetcher()
		result, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected fetch error: %v", err)
		}

		if result.StatusCode != http.StatusOK {
			t.Errorf("expected status 200, got %d", result.StatusCode)
		}
		if !strings.Contains(result.Body, "hello") {
			t.Errorf("expected body content, got %q", result.Body)
		}
		if !strings.Contains(result.ContentType, "text/html") {
			t.Errorf("expected html content type, got %q", result.ContentType)
		}
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := NewFetcher(WithUserAgent("test-crawler/0.1"))
		if _, err := fetcher.Fetch(context.Background(), server.URL); err != nil {
			t.Fatalf("unexpected fetch error: %v", err)
		}

		if gotUA != "test-crawler/0.1" {
			t.Errorf("expected custom user agent, got %q", gotUA)
		}
	})

	t.Run("non-2xx is a status error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer server.Close()

		fetcher := NewFetcher()
		_, err := fetcher.Fetch(context.Background(), server.URL)

		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if fetchErr.Kind != FetchStatus {
			t.Errorf("expected kind %q, got %q", FetchStatus, fetchErr.Kind)
		}
		if fetchErr.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", fetchErr.StatusCode)
		}
	})

	t.Run("unreachable server is a network error", func(t *testing.T) {
		t.Parallel()

		// Port 0 never accepts connections.
		fetcher := NewFetcher(WithTimeout(time.Second))
		_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:0/")

		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if fetchErr.Kind != FetchNetwork {
			t.Errorf("expected kind %q, got %q", FetchNetwork, fetchErr.Kind)
		}
	})

	t.Run("slow server is a timeout error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		fetcher := NewFetcher(WithTimeout(50 * time.Millisecond))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		var fetchErr *FetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if fetchErr.Kind != FetchTimeout {
			t.Errorf("expected kind %q, got %q", FetchTimeout, fetchErr.Kind)
		}
	})

	t.Run("body is capped at max size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(strings.Repeat("x", 10_000)))
		}))
		defer server.Close()

		fetcher := NewFetcher(WithMaxBodySize(1024))
		result, err := fetcher.Fetch(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("unexpected fetch error: %v", err)
		}

		if len(result.Body) != 1024 {
			t.Errorf("expected 1024 bytes, got %d", len(result.Body))
		}
	})
}
