package index

import (
	"math"
	"testing"
	"time"
)

// addDoc indexes a document with the given terms.
func addDoc(ix *Indexer, url string, terms ...string) {
	ix.AddDocument(Document{URL: url, Title: url, Domain: "example.com"}, terms)
}

// almostEqual compares floats with a small tolerance.
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestIndexerCounts tests vocabulary, document, and frequency counters.
func TestIndexerCounts(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	addDoc(ix, "http://example.com/1", "cache", "miss", "cache")
	addDoc(ix, "http://example.com/2", "cache", "hit")
	addDoc(ix, "http://example.com/3", "deploy")

	if got := ix.TotalDocuments(); got != 3 {
		t.Errorf("TotalDocuments() = %d, want 3", got)
	}
	if got := ix.VocabularySize(); got != 4 {
		t.Errorf("VocabularySize() = %d, want 4", got)
	}
	if got := ix.DocumentFrequency("cache"); got != 2 {
		t.Errorf("DocumentFrequency(cache) = %d, want 2", got)
	}
	if got := ix.DocumentFrequency("unseen"); got != 0 {
		t.Errorf("DocumentFrequency(unseen) = %d, want 0", got)
	}

	vector := ix.TermVector("http://example.com/1")
	if vector["cache"] != 2 || vector["miss"] != 1 {
		t.Errorf("unexpected term vector: %v", vector)
	}
}

// TestIndexerIDF tests the smoothed inverse document frequency.
func TestIndexerIDF(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	for i := range 10 {
		url := "http://example.com/" + string(rune('a'+i))
		if i < 3 {
			addDoc(ix, url, "shared", "filler")
		} else {
			addDoc(ix, url, "filler")
		}
	}

	// 10 documents, term in 3: ln(11/4) + 1.
	if got, want := ix.IDF("shared"), math.Log(11.0/4.0)+1; !almostEqual(got, want) {
		t.Errorf("IDF(shared) = %f, want %f", got, want)
	}

	// Unseen term: ln(11/1) + 1.
	if got, want := ix.IDF("unseen"), math.Log(11.0)+1; !almostEqual(got, want) {
		t.Errorf("IDF(unseen) = %f, want %f", got, want)
	}

	// Term in every document sits on the floor: ln(11/11) + 1 = 1.
	if got := ix.IDF("filler"); !almostEqual(got, 1) {
		t.Errorf("IDF(filler) = %f, want 1", got)
	}
}

// TestIndexerIDFSmallCorpus tests that idf stays strictly positive in a
// two-document corpus, where the unsmoothed ln(N/(1+df)) collapses to
// ln(1) = 0 and erases the term's ranking signal.
func TestIndexerIDFSmallCorpus(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	addDoc(ix, "http://example.com/a", "payroll", "page")
	addDoc(ix, "http://example.com/b", "cafeteria", "page")

	// 2 documents, term in 1: ln(3/2) + 1.
	if got, want := ix.IDF("payroll"), math.Log(3.0/2.0)+1; !almostEqual(got, want) {
		t.Errorf("IDF(payroll) = %f, want %f", got, want)
	}
	if got := ix.IDF("payroll"); got <= 0 {
		t.Errorf("IDF(payroll) = %f, want > 0", got)
	}
	// Even a term in both documents keeps a positive weight.
	if got := ix.IDF("page"); got < 1 {
		t.Errorf("IDF(page) = %f, want >= 1", got)
	}
}

// TestIndexerIDFEmpty tests the empty-index guard.
func TestIndexerIDFEmpty(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	if got := ix.IDF("anything"); got != 0 {
		t.Errorf("IDF on empty index = %f, want 0", got)
	}
}

// TestIndexerWeight tests the tf-idf weight of a term in a document.
func TestIndexerWeight(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	addDoc(ix, "http://example.com/1", "cache", "cache", "miss", "rate")
	addDoc(ix, "http://example.com/2", "deploy")
	addDoc(ix, "http://example.com/3", "deploy")

	// tf = 2/4, idf = ln(4/2) + 1.
	want := 0.5 * (math.Log(2.0) + 1)
	if got := ix.Weight("cache", "http://example.com/1"); !almostEqual(got, want) {
		t.Errorf("Weight(cache, doc1) = %f, want %f", got, want)
	}

	if got := ix.Weight("cache", "http://example.com/2"); got != 0 {
		t.Errorf("Weight for absent term = %f, want 0", got)
	}
	if got := ix.Weight("cache", "http://nowhere"); got != 0 {
		t.Errorf("Weight for unknown doc = %f, want 0", got)
	}
}

// TestIndexerReindexIdempotent tests that re-indexing identical content
// changes nothing.
func TestIndexerReindexIdempotent(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	addDoc(ix, "http://example.com/1", "alpha", "beta")
	addDoc(ix, "http://example.com/2", "beta")

	before := struct {
		docs, vocab, df int
	}{ix.TotalDocuments(), ix.VocabularySize(), ix.DocumentFrequency("beta")}

	addDoc(ix, "http://example.com/1", "alpha", "beta")

	if ix.TotalDocuments() != before.docs {
		t.Errorf("TotalDocuments changed: %d -> %d", before.docs, ix.TotalDocuments())
	}
	if ix.VocabularySize() != before.vocab {
		t.Errorf("VocabularySize changed: %d -> %d", before.vocab, ix.VocabularySize())
	}
	if ix.DocumentFrequency("beta") != before.df {
		t.Errorf("DocumentFrequency changed: %d -> %d", before.df, ix.DocumentFrequency("beta"))
	}
}

// TestIndexerReindexReplaces tests that re-indexing with new content
// drops the old postings.
func TestIndexerReindexReplaces(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	addDoc(ix, "http://example.com/1", "stale", "shared")
	addDoc(ix, "http://example.com/1", "fresh", "shared")

	if got := ix.DocumentFrequency("stale"); got != 0 {
		t.Errorf("expected stale term removed, df = %d", got)
	}
	if got := ix.DocumentFrequency("fresh"); got != 1 {
		t.Errorf("expected fresh term indexed, df = %d", got)
	}
	if got := ix.VocabularySize(); got != 2 {
		t.Errorf("VocabularySize() = %d, want 2", got)
	}
	if got := ix.TotalDocuments(); got != 1 {
		t.Errorf("TotalDocuments() = %d, want 1", got)
	}
}

// TestIndexerDocuments tests insertion-order listing and domain filter.
func TestIndexerDocuments(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	ix.AddDocument(Document{URL: "http://a.example.com/1", Domain: "a.example.com"}, []string{"x"})
	ix.AddDocument(Document{URL: "http://b.example.com/2", Domain: "b.example.com"}, []string{"x"})
	ix.AddDocument(Document{URL: "http://a.example.com/3", Domain: "a.example.com"}, []string{"x"})

	all := ix.Documents("")
	if len(all) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(all))
	}
	wantOrder := []string{"http://a.example.com/1", "http://b.example.com/2", "http://a.example.com/3"}
	for i, doc := range all {
		if doc.URL != wantOrder[i] {
			t.Errorf("position %d: got %q, want %q", i, doc.URL, wantOrder[i])
		}
	}

	filtered := ix.Documents("a.example.com")
	if len(filtered) != 2 {
		t.Errorf("expected 2 filtered documents, got %d", len(filtered))
	}

	domains := ix.Domains()
	if domains["a.example.com"] != 2 || domains["b.example.com"] != 1 {
		t.Errorf("unexpected domain counts: %v", domains)
	}
}

// TestIndexerLastCrawl tests the most-recent-fetch timestamp.
func TestIndexerLastCrawl(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	if !ix.LastCrawl().IsZero() {
		t.Error("expected zero time on empty index")
	}

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	ix.AddDocument(Document{URL: "http://example.com/1", LastCrawled: newer}, []string{"x"})
	ix.AddDocument(Document{URL: "http://example.com/2", LastCrawled: older}, []string{"x"})

	if !ix.LastCrawl().Equal(newer) {
		t.Errorf("LastCrawl() = %s, want %s", ix.LastCrawl(), newer)
	}
}

// TestIndexerReset tests that Reset empties everything.
func TestIndexerReset(t *testing.T) {
	t.Parallel()

	ix := NewIndexer()
	addDoc(ix, "http://example.com/1", "x")
	ix.Reset()

	if ix.TotalDocuments() != 0 || ix.VocabularySize() != 0 || len(ix.Documents("")) != 0 {
		t.Error("expected empty index after reset")
	}
}
