package rag

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"unicode"
)

// Retriever ranks stored passages for a query. It searches the vector index
// when an embedder is configured and falls back to keyword overlap otherwise
// or when the vector search fails. Passages whose embedding failed at ingest
// are matched by keywords and merged into the vector results.
type Retriever struct {
	store    *Store
	embedder Embedder
	index    VectorIndex
	limit    int
}

// NewRetriever creates a retriever. embedder and index may be nil, which
// selects lexical search only.
func NewRetriever(store *Store, embedder Embedder, index VectorIndex, limit int) *Retriever {
	if limit <= 0 {
		limit = 5
	}
	if embedder == nil || index == nil {
		embedder, index = nil, nil
	}
	return &Retriever{
		store:    store,
		embedder: embedder,
		index:    index,
		limit:    limit,
	}
}

// Mode reports the primary search strategy
func (r *Retriever) Mode() string {
	if r.embedder != nil {
		return "vector"
	}
	return "lexical"
}

// Retrieve returns at most k results, best first. A non-positive k uses the
// configured limit. It never fails: backend problems degrade to lexical
// search and an empty store yields no results.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) []Result {
	if k <= 0 {
		k = r.limit
	}
	if r.store.Len() == 0 {
		return []Result{}
	}

	if r.embedder != nil {
		results, err := r.vectorSearch(ctx, query, k)
		if err == nil {
			return results
		}
		slog.Warn("Vector search failed, using keyword search", "error", err)
	}

	return LexicalSearch(r.store.Passages(), query, k)
}

func (r *Retriever) vectorSearch(ctx context.Context, query string, k int) ([]Result, error) {
	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	matches, err := r.index.Search(ctx, embedding, uint64(k))
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(matches))
	for _, m := range matches {
		passage, ok := r.store.Passage(m.Passage.ID)
		if !ok {
			continue
		}
		relevance := min(max(float64(m.Similarity), 0), 1)
		results = append(results, Result{
			Passage:   passage,
			Score:     1 - float64(m.Similarity),
			Relevance: relevance,
		})
	}

	if unindexed := r.store.Unindexed(); len(unindexed) > 0 {
		results = append(results, LexicalSearch(unindexed, query, k)...)
	}

	slices.SortStableFunc(results, compareResults)
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// LexicalSearch scores passages by the fraction of distinct query tokens
// they contain. Passages without any match are dropped; ties keep ingestion
// order.
func LexicalSearch(passages []Passage, query string, k int) []Result {
	queryTokens := uniqueTokens(query)
	if len(queryTokens) == 0 || k <= 0 {
		return []Result{}
	}

	results := make([]Result, 0)
	for _, p := range passages {
		passageTokens := make(map[string]struct{})
		for _, t := range Tokenize(p.Text) {
			passageTokens[t] = struct{}{}
		}

		matches := 0
		for _, t := range queryTokens {
			if _, ok := passageTokens[t]; ok {
				matches++
			}
		}
		if matches == 0 {
			continue
		}

		relevance := float64(matches) / float64(len(queryTokens))
		results = append(results, Result{
			Passage:   p,
			Score:     1 - relevance,
			Relevance: relevance,
		})
	}

	slices.SortStableFunc(results, compareResults)
	if len(results) > k {
		results = results[:k]
	}
	return results
}

func compareResults(a, b Result) int {
	switch {
	case a.Relevance > b.Relevance:
		return -1
	case a.Relevance < b.Relevance:
		return 1
	}
	return a.Passage.Seq - b.Passage.Seq
}

// Tokenize lower-cases text, splits on whitespace and trims punctuation
// around each token
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func uniqueTokens(text string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, t := range Tokenize(text) {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}
	return tokens
}
