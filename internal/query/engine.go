package query

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Schnee111/intrasearch/internal/index"
	"github.com/Schnee111/intrasearch/internal/model"
)

// DefaultSnippetLength is the content excerpt size in results.
const DefaultSnippetLength = 200

// RouteResolver reconstructs the provenance route from a seed page to a
// target page. Implemented by the page store by walking discoveredVia
// parent pointers.
type RouteResolver interface {
	Route(ctx context.Context, url string) ([]model.RouteStep, error)
}

// Engine converts query strings into TF-IDF vectors and ranks indexed
// documents by cosine similarity.
type Engine struct {
	// index is the shared inverted index, read-locked per access.
	index *index.Indexer

	// routes reconstructs result provenance on demand. Routes are not
	// stored on results in the index; they are derived from parent
	// pointers at query time.
	routes RouteResolver

	// snippetLen is the content excerpt length.
	snippetLen int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithSnippetLength overrides the content excerpt length.
func WithSnippetLength(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.snippetLen = n
		}
	}
}

// NewEngine creates a query engine over the given index and route
// resolver.
func NewEngine(ix *index.Indexer, routes RouteResolver, opts ...EngineOption) *Engine {
	e := &Engine{
		index:      ix,
		routes:     routes,
		snippetLen: DefaultSnippetLength,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Search scores every candidate document against the query and returns
// the full ranked result list. Truncation to the request limit happens
// in the caller, after the result cache: cache entries are keyed by
// (terms, filter) only, so they must hold the untruncated set to serve
// later requests with different limits.
//
// An empty query is a listing, not a search: every candidate document is
// returned in insertion order with a similarity of 0. For non-empty
// queries, documents never ranked above zero still appear with score 0;
// ranking, not filtering, is this engine's contract.
func (e *Engine) Search(ctx context.Context, terms []string, domainFilter string) ([]model.SearchResult, error) {
	docs := e.index.Documents(domainFilter)
	if len(docs) == 0 {
		return []model.SearchResult{}, nil
	}

	if len(terms) == 0 {
		return e.listAll(ctx, docs)
	}

	// Query TF-IDF vector. Terms absent from the vocabulary get the
	// smoothed idf and simply contribute nothing to any dot product.
	queryWeights := make(map[string]float64, len(terms))
	counts := make(map[string]int, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	var queryNorm float64
	for t, c := range counts {
		w := float64(c) / float64(len(terms)) * e.index.IDF(t)
		queryWeights[t] = w
		queryNorm += w * w
	}
	queryNorm = math.Sqrt(queryNorm)

	type scored struct {
		doc   index.Document
		score float64
	}
	ranked := make([]scored, 0, len(docs))
	for _, doc := range docs {
		ranked = append(ranked, scored{doc: doc, score: e.cosine(queryWeights, queryNorm, doc.URL)})
	}

	// Descending similarity; ties go to the most recently crawled page.
	// The stable sort keeps insertion order for full ties, so repeated
	// identical queries rank identically.
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].doc.LastCrawled.After(ranked[j].doc.LastCrawled)
	})

	results := make([]model.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		result, err := e.buildResult(ctx, r.doc, r.score)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// listAll renders every candidate in insertion order with a zero score.
func (e *Engine) listAll(ctx context.Context, docs []index.Document) ([]model.SearchResult, error) {
	results := make([]model.SearchResult, 0, len(docs))
	for _, doc := range docs {
		result, err := e.buildResult(ctx, doc, 0)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// cosine computes the similarity between the query vector and one
// document: dot(q, d) / (|q| * |d|), defined as 0 when either norm is 0.
func (e *Engine) cosine(queryWeights map[string]float64, queryNorm float64, url string) float64 {
	if queryNorm == 0 {
		return 0
	}
	docNorm := e.index.Norm(url)
	if docNorm == 0 {
		return 0
	}

	var dot float64
	for term, qw := range queryWeights {
		if qw == 0 {
			continue
		}
		dot += qw * e.index.Weight(term, url)
	}
	if dot == 0 {
		return 0
	}
	return dot / (queryNorm * docNorm)
}

// buildResult assembles an immutable result with its provenance route.
func (e *Engine) buildResult(ctx context.Context, doc index.Document, score float64) (model.SearchResult, error) {
	route, err := e.routes.Route(ctx, doc.URL)
	if err != nil {
		return model.SearchResult{}, fmt.Errorf("resolve route for %s: %w", doc.URL, err)
	}

	return model.SearchResult{
		URL:             doc.URL,
		Title:           doc.Title,
		ContentSnippet:  model.Excerpt(doc.Content, e.snippetLen),
		SimilarityScore: score,
		Route:           route,
		LastCrawled:     doc.LastCrawled,
	}, nil
}
