package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Schnee111/intrasearch/internal/model"
)

// TestMachineLifecycle tests the idle -> crawling -> terminal -> crawling
// transitions.
func TestMachineLifecycle(t *testing.T) {
	t.Parallel()

	m := NewMachine()

	if got := m.Snapshot().Status; got != model.StatusIdle {
		t.Fatalf("new machine status = %q, want idle", got)
	}

	ctx, err := m.Begin(context.Background(), model.CrawlJob{ID: "job-1"})
	if err != nil {
		t.Fatalf("unexpected begin error: %v", err)
	}
	if ctx == nil {
		t.Fatal("expected a run context")
	}

	snap := m.Snapshot()
	if snap.Status != model.StatusCrawling {
		t.Errorf("status after begin = %q, want crawling", snap.Status)
	}
	if snap.StartTime.IsZero() {
		t.Error("expected start time to be set")
	}

	m.Finish(model.StatusCompleted)
	if got := m.Snapshot().Status; got != model.StatusCompleted {
		t.Errorf("status after finish = %q, want completed", got)
	}

	// A terminal machine accepts the next crawl.
	if _, err := m.Begin(context.Background(), model.CrawlJob{ID: "job-2"}); err != nil {
		t.Errorf("expected begin from completed state to succeed, got %v", err)
	}
	m.Finish(model.StatusStopped)
}

// TestMachineRejectsConcurrentCrawl tests the one-crawl-at-a-time
// invariant.
func TestMachineRejectsConcurrentCrawl(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	if _, err := m.Begin(context.Background(), model.CrawlJob{ID: "job-1"}); err != nil {
		t.Fatalf("unexpected begin error: %v", err)
	}

	if _, err := m.Begin(context.Background(), model.CrawlJob{ID: "job-2"}); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}

	// The running job is untouched by the rejected attempt.
	if got := m.Snapshot().ID; got != "job-1" {
		t.Errorf("expected job-1 to stay active, got %q", got)
	}
}

// TestMachineStop tests cooperative cancellation.
func TestMachineStop(t *testing.T) {
	t.Parallel()

	t.Run("stop cancels the run context", func(t *testing.T) {
		t.Parallel()

		m := NewMachine()
		ctx, err := m.Begin(context.Background(), model.CrawlJob{ID: "job-1"})
		if err != nil {
			t.Fatalf("unexpected begin error: %v", err)
		}

		m.Stop()

		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("expected run context cancelled after stop")
		}

		// Stop alone does not change the status; the crawl goroutine
		// observes the cancellation and calls Finish.
		if got := m.Snapshot().Status; got != model.StatusCrawling {
			t.Errorf("status after stop = %q, want crawling", got)
		}
	})

	t.Run("stop while idle is a no-op", func(t *testing.T) {
		t.Parallel()

		m := NewMachine()
		m.Stop()
		if got := m.Snapshot().Status; got != model.StatusIdle {
			t.Errorf("status = %q, want idle", got)
		}
	})
}

// TestMachineUpdate tests progress bookkeeping on the live job.
func TestMachineUpdate(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	if _, err := m.Begin(context.Background(), model.CrawlJob{ID: "job-1"}); err != nil {
		t.Fatalf("unexpected begin error: %v", err)
	}

	m.Update(func(j *model.CrawlJob) {
		j.PagesCrawled = 7
		j.CurrentURL = "http://example.com/now"
	})

	snap := m.Snapshot()
	if snap.PagesCrawled != 7 || snap.CurrentURL != "http://example.com/now" {
		t.Errorf("update lost: %+v", snap)
	}

	// Finishing clears the transient current URL.
	m.Finish(model.StatusCompleted)
	if got := m.Snapshot().CurrentURL; got != "" {
		t.Errorf("expected current url cleared, got %q", got)
	}
}

// TestMachineDone tests completion signaling.
func TestMachineDone(t *testing.T) {
	t.Parallel()

	t.Run("closed when no crawl active", func(t *testing.T) {
		t.Parallel()

		m := NewMachine()
		select {
		case <-m.Done():
		case <-time.After(time.Second):
			t.Fatal("expected Done closed on idle machine")
		}
	})

	t.Run("closes on finish", func(t *testing.T) {
		t.Parallel()

		m := NewMachine()
		if _, err := m.Begin(context.Background(), model.CrawlJob{ID: "job-1"}); err != nil {
			t.Fatalf("unexpected begin error: %v", err)
		}

		done := m.Done()
		select {
		case <-done:
			t.Fatal("Done closed while crawling")
		default:
		}

		m.Finish(model.StatusCompleted)
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("expected Done closed after finish")
		}
	})
}
