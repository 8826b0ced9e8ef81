package engine

import (
	"context"
	"sync"
	"time"

	"github.com/Schnee111/intrasearch/internal/model"
)

// Machine is the crawl state machine. It owns the one CrawlJob allowed
// in the system and mediates every transition:
//
//	idle -> crawling -> {completed, stopped} -> idle
//
// where a new start from any terminal state moves straight back to
// crawling. Status reads are plain snapshot copies, safe from any
// goroutine while the crawl task mutates the live job.
type Machine struct {
	// mu guards the job and the cancellation plumbing.
	mu sync.Mutex

	// job is the live CrawlJob. Status is StatusIdle until the first
	// Begin.
	job model.CrawlJob

	// cancel requests cooperative cancellation of the active crawl
	// task. Nil outside StatusCrawling.
	cancel context.CancelFunc

	// done is closed when the active crawl task finishes. Nil outside
	// StatusCrawling.
	done chan struct{}
}

// NewMachine creates a Machine in the idle state.
func NewMachine() *Machine {
	return &Machine{
		job: model.CrawlJob{Status: model.StatusIdle},
	}
}

// Begin transitions the machine into crawling with the given job.
// It returns ErrAlreadyRunning when a crawl is active: terminal states
// reset implicitly, but a running job is never preempted.
// The returned context governs the crawl task; Stop cancels it.
func (m *Machine) Begin(ctx context.Context, job model.CrawlJob) (context.Context, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.job.Status.Terminal() {
		return nil, ErrAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(ctx)

	job.Status = model.StatusCrawling
	job.StartTime = time.Now()
	m.job = job
	m.cancel = cancel
	m.done = make(chan struct{})

	return runCtx, nil
}

// Update applies a mutation to the live job under the lock. The crawl
// task uses this for progress bookkeeping (pagesCrawled, currentUrl).
func (m *Machine) Update(fn func(job *model.CrawlJob)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.job)
}

// Finish moves the machine into a terminal state and releases the
// cancellation plumbing. stopped and completed are distinct terminal
// states: both leave the partial index intact and queryable.
func (m *Machine) Finish(status model.CrawlStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.job.Status = status
	m.job.CurrentURL = ""
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.done != nil {
		close(m.done)
		m.done = nil
	}
}

// Stop requests graceful cancellation of the active crawl. The flag is
// cooperative: the traversal observes it at the next fetch boundary,
// never mid-fetch. Stop while idle or terminal is a no-op.
func (m *Machine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.job.Status == model.StatusCrawling && m.cancel != nil {
		m.cancel()
	}
}

// Snapshot returns a copy of the current CrawlJob, safe to read while
// the crawl task keeps mutating the original.
func (m *Machine) Snapshot() model.CrawlJob {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.job.Snapshot()
}

// Done returns a channel closed when the active crawl task finishes.
// Returns a closed channel when no crawl is active, so waiting is
// always safe.
func (m *Machine) Done() <-chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return m.done
}
