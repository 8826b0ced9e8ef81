package index

import (
	"math"
	"sync"
	"time"
)

// Document is the metadata the index keeps per page, enough to render a
// search result without consulting the page store.
type Document struct {
	// URL is the canonical page URL, the document key.
	URL string

	// Title is the page title.
	Title string

	// Content is the extracted plain text, kept for snippets.
	Content string

	// Domain is the www-stripped page domain, used by domain filters.
	Domain string

	// LastCrawled is when the page was fetched.
	LastCrawled time.Time
}

// Indexer maintains the inverted index: term postings, per-document term
// frequency vectors, and global document frequencies.
//
// Design decision: The index is a single-owner component with internal
// synchronization rather than an ambient shared structure. All writes
// (new postings, document-frequency updates) exclude each other and any
// concurrent read from the query engine, so a reader can never observe
// a document mid-update.
type Indexer struct {
	// mu guards every field below.
	mu sync.RWMutex

	// postings maps term -> document URL -> occurrence count.
	postings map[string]map[string]int

	// vectors maps document URL -> term -> occurrence count.
	// This is the transpose of postings, kept for O(terms(d)) access to
	// a single document's vector.
	vectors map[string]map[string]int

	// lengths maps document URL -> total term count (including terms
	// that appear multiple times), the tf denominator.
	lengths map[string]int

	// docs maps document URL -> result metadata.
	docs map[string]*Document

	// order records document URLs in first-indexing order. The empty
	// query lists documents in this order.
	order []string
}

// NewIndexer creates an empty index.
func NewIndexer() *Indexer {
	return &Indexer{
		postings: make(map[string]map[string]int),
		vectors:  make(map[string]map[string]int),
		lengths:  make(map[string]int),
		docs:     make(map[string]*Document),
	}
}

// AddDocument indexes a document under its URL with the given normalized
// terms. Re-indexing the same URL first removes its old postings, so the
// operation is idempotent: indexing identical content twice leaves every
// count unchanged from a single indexing.
func (ix *Indexer) AddDocument(doc Document, terms []string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, exists := ix.docs[doc.URL]; exists {
		ix.removeLocked(doc.URL)
	} else {
		ix.order = append(ix.order, doc.URL)
	}

	vector := make(map[string]int, len(terms))
	for _, term := range terms {
		vector[term]++
	}

	for term, count := range vector {
		posting, ok := ix.postings[term]
		if !ok {
			posting = make(map[string]int)
			ix.postings[term] = posting
		}
		posting[doc.URL] = count
	}

	ix.vectors[doc.URL] = vector
	ix.lengths[doc.URL] = len(terms)
	d := doc
	ix.docs[doc.URL] = &d
}

// removeLocked strips a document's postings. Caller holds mu.
// Terms whose posting list empties are deleted so the document
// frequency invariant (df == count of non-empty postings) holds and
// vocabulary size never counts orphaned terms.
func (ix *Indexer) removeLocked(url string) {
	for term := range ix.vectors[url] {
		posting := ix.postings[term]
		delete(posting, url)
		if len(posting) == 0 {
			delete(ix.postings, term)
		}
	}
	delete(ix.vectors, url)
	delete(ix.lengths, url)
	delete(ix.docs, url)
}

// TermVector returns a copy of the term -> frequency map for a document,
// or nil when the URL is not indexed.
func (ix *Indexer) TermVector(url string) map[string]int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	vector, ok := ix.vectors[url]
	if !ok {
		return nil
	}
	cp := make(map[string]int, len(vector))
	for term, count := range vector {
		cp[term] = count
	}
	return cp
}

// VocabularySize returns the number of distinct indexed terms.
func (ix *Indexer) VocabularySize() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.postings)
}

// TotalDocuments returns the number of indexed documents.
func (ix *Indexer) TotalDocuments() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// DocumentFrequency returns the number of distinct documents containing
// the term. Never negative; zero for unseen terms.
func (ix *Indexer) DocumentFrequency(term string) int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.postings[term])
}

// IDF returns the smoothed inverse document frequency for a term:
//
//	idf(t) = ln((1 + totalDocuments) / (1 + docFrequency(t))) + 1
//
// The 1+ smoothing on both counts keeps the value finite for query
// terms unseen in the corpus, and the +1 floor keeps every idf at
// least 1. A raw ln(N/(1+df)) collapses to zero in small corpora (two
// documents, term in one) and goes negative for common terms, which
// would zero out or invert the very signal the ranking needs.
func (ix *Indexer) IDF(term string) float64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.idfLocked(term)
}

func (ix *Indexer) idfLocked(term string) float64 {
	if len(ix.docs) == 0 {
		return 0
	}
	return math.Log(float64(1+len(ix.docs))/float64(1+len(ix.postings[term]))) + 1
}

// Weight returns the TF-IDF weight of a term in a document:
// tf(t,d) * idf(t) with tf(t,d) = count(t in d) / totalTerms(d).
func (ix *Indexer) Weight(term, url string) float64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	length := ix.lengths[url]
	if length == 0 {
		return 0
	}
	tf := float64(ix.vectors[url][term]) / float64(length)
	return tf * ix.idfLocked(term)
}

// Norm returns the Euclidean norm of a document's full TF-IDF vector.
func (ix *Indexer) Norm(url string) float64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	length := ix.lengths[url]
	if length == 0 {
		return 0
	}

	var sum float64
	for term, count := range ix.vectors[url] {
		w := float64(count) / float64(length) * ix.idfLocked(term)
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Documents returns the indexed documents in first-indexing order,
// optionally restricted to a domain. The returned slice holds copies.
func (ix *Indexer) Documents(domainFilter string) []Document {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	out := make([]Document, 0, len(ix.order))
	for _, url := range ix.order {
		doc := ix.docs[url]
		if domainFilter != "" && doc.Domain != domainFilter {
			continue
		}
		out = append(out, *doc)
	}
	return out
}

// Domains returns the count of indexed pages per domain.
func (ix *Indexer) Domains() map[string]int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	counts := make(map[string]int)
	for _, doc := range ix.docs {
		counts[doc.Domain]++
	}
	return counts
}

// LastCrawl returns the most recent LastCrawled across all documents,
// or the zero time for an empty index.
func (ix *Indexer) LastCrawl() time.Time {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var last time.Time
	for _, doc := range ix.docs {
		if doc.LastCrawled.After(last) {
			last = doc.LastCrawled
		}
	}
	return last
}

// Reset empties the index.
func (ix *Indexer) Reset() {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.postings = make(map[string]map[string]int)
	ix.vectors = make(map[string]map[string]int)
	ix.lengths = make(map[string]int)
	ix.docs = make(map[string]*Document)
	ix.order = nil
}
