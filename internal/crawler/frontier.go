package crawler

import "github.com/Schnee111/intrasearch/internal/model"

// Item is one frontier entry: a discovered-but-not-yet-visited URL with
// its traversal bookkeeping.
type Item struct {
	// URL is the canonical URL awaiting a visit.
	URL string

	// Depth is the link distance from the seed that discovered it.
	Depth int

	// Parent is the canonical URL of the page whose link discovered
	// this one. Empty for seeds.
	Parent string
}

// Frontier holds the to-visit set of a traversal. The traversal loop is
// identical for both algorithms; only the frontier's pop order differs.
//
// Design decision: We model the traversal order as a strategy behind one
// interface rather than two crawl loops because:
//  1. The admission rules, politeness, and bookkeeping are shared
//  2. The only behavioral difference really is queue vs stack
//  3. Tests can drive both orders through the same scheduler
type Frontier interface {
	// Push adds newly discovered items. Implementations must arrange
	// internal order so a page's links are explored in discovery order.
	Push(items ...Item)

	// Pop removes and returns the next item to visit.
	// The second return value is false when the frontier is empty.
	Pop() (Item, bool)

	// Peek returns the next item without removing it.
	Peek() (Item, bool)

	// Len returns the number of items awaiting a visit.
	Len() int
}

// NewFrontier returns the frontier backing for the given algorithm:
// a FIFO queue for breadth-first, a LIFO stack for depth-first.
func NewFrontier(alg model.Algorithm) Frontier {
	if alg == model.AlgorithmDFS {
		return &stackFrontier{}
	}
	return &queueFrontier{}
}

// queueFrontier is the FIFO backing used by breadth-first traversal.
// All same-depth entries drain before any deeper entry, which gives the
// level-order coverage guarantee.
type queueFrontier struct {
	items []Item
}

func (q *queueFrontier) Push(items ...Item) {
	q.items = append(q.items, items...)
}

func (q *queueFrontier) Pop() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item, true
}

func (q *queueFrontier) Peek() (Item, bool) {
	if len(q.items) == 0 {
		return Item{}, false
	}
	return q.items[0], true
}

func (q *queueFrontier) Len() int {
	return len(q.items)
}

// stackFrontier is the LIFO backing used by depth-first traversal.
// Its memory stays bounded by maxDepth times the branching factor at
// the cost of level coverage.
type stackFrontier struct {
	items []Item
}

// Push appends items in reverse so that the first link discovered on a
// page is also the first one popped. This matches the recursive
// formulation of depth-first search: a page's links are explored in
// document order, each fully before its next sibling.
func (s *stackFrontier) Push(items ...Item) {
	for i := len(items) - 1; i >= 0; i-- {
		s.items = append(s.items, items[i])
	}
}

func (s *stackFrontier) Pop() (Item, bool) {
	if len(s.items) == 0 {
		return Item{}, false
	}
	item := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return item, true
}

func (s *stackFrontier) Peek() (Item, bool) {
	if len(s.items) == 0 {
		return Item{}, false
	}
	return s.items[len(s.items)-1], true
}

func (s *stackFrontier) Len() int {
	return len(s.items)
}
