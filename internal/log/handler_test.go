package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"unicode/utf8"
)

// TestTruncatingHandler tests attribute value capping.
func TestTruncatingHandler(t *testing.T) {
	t.Parallel()

	t.Run("long string values are capped", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, nil), 32))

		logger.Info("page indexed", "content", strings.Repeat("x", 500))

		out := buf.String()
		if !strings.Contains(out, truncationMarker) {
			t.Errorf("expected truncation marker in output: %s", out)
		}
		if strings.Contains(out, strings.Repeat("x", 100)) {
			t.Error("expected long value to be cut")
		}
	})

	t.Run("short values pass through", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, nil), 32))

		logger.Info("fetched", "url", "http://example.com")

		out := buf.String()
		if strings.Contains(out, truncationMarker) {
			t.Errorf("did not expect truncation: %s", out)
		}
		if !strings.Contains(out, "http://example.com") {
			t.Errorf("expected url in output: %s", out)
		}
	})

	t.Run("truncation preserves valid utf-8", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, nil), 10))

		// Multi-byte runes straddling the cut point must not be split.
		logger.Info("title", "value", strings.Repeat("é", 20))

		if !utf8.ValidString(buf.String()) {
			t.Error("expected valid utf-8 after truncation")
		}
	})

	t.Run("non-string attributes untouched", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(NewTruncatingHandler(slog.NewTextHandler(&buf, nil), 4))

		logger.Info("progress", "pages", 123456789)

		if !strings.Contains(buf.String(), "123456789") {
			t.Errorf("expected numeric attribute intact: %s", buf.String())
		}
	})
}

// TestNewLogger tests the verbosity switch.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("quiet suppresses debug and info", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, false)

		logger.Debug("dropped")
		logger.Info("dropped too")
		logger.Warn("kept")

		out := buf.String()
		if strings.Contains(out, "dropped") {
			t.Errorf("expected debug/info suppressed: %s", out)
		}
		if !strings.Contains(out, "kept") {
			t.Errorf("expected warn emitted: %s", out)
		}
	})

	t.Run("verbose emits debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(&buf, true)

		logger.Debug("visible")

		if !strings.Contains(buf.String(), "visible") {
			t.Errorf("expected debug emitted: %s", buf.String())
		}
	})
}
