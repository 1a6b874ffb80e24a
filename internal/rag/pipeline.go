package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// Pipeline orchestrates the RAG pipeline
type Pipeline struct {
	chunker   TextChunker
	embedder  Embedder
	index     VectorIndex
	store     *Store
	retriever *Retriever
}

// IngestResult describes a stored document
type IngestResult struct {
	DocumentID string
	Chunks     int
	// Indexed is false when the passages are only reachable by keyword search
	Indexed bool
}

// Health is the pipeline status reported by GET /health
type Health struct {
	Initialized          bool   `json:"initialized"`
	VectorstoreAvailable bool   `json:"vectorstore_available"`
	EmbeddingsAvailable  bool   `json:"embeddings_available"`
	DocumentCount        int    `json:"document_count"`
	PassageCount         int    `json:"passage_count"`
	SearchMode           string `json:"search_mode"`
	VectorIndex          string `json:"vector_index,omitempty"`
	TestQuerySuccessful  bool   `json:"test_query_successful"`
}

// NewPipeline creates a new RAG pipeline. With a nil embedder or index the
// pipeline runs on keyword search alone.
func NewPipeline(ctx context.Context, chunker TextChunker, embedder Embedder, index VectorIndex, searchLimit, vectorSize int) (*Pipeline, error) {
	if embedder == nil || index == nil {
		embedder, index = nil, nil
	}

	if index != nil {
		if err := index.EnsureCollection(ctx, uint64(vectorSize)); err != nil {
			return nil, fmt.Errorf("failed to ensure collection: %w", err)
		}
	}

	store := NewStore()
	return &Pipeline{
		chunker:   chunker,
		embedder:  embedder,
		index:     index,
		store:     store,
		retriever: NewRetriever(store, embedder, index, searchLimit),
	}, nil
}

// Ingest chunks and stores a document, then embeds and indexes its passages.
// Re-ingesting a document ID replaces its passages. Embedding or indexing
// failures are logged and leave the passages to the keyword search.
func (p *Pipeline) Ingest(ctx context.Context, doc Document) (IngestResult, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return IngestResult{}, fmt.Errorf("document text is empty")
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	// Chunk the text
	chunks := p.chunker.ChunkText(doc.Text)
	if len(chunks) == 0 {
		return IngestResult{}, fmt.Errorf("no chunks created from text")
	}

	passages := p.store.Add(doc, chunks)
	result := IngestResult{DocumentID: doc.ID, Chunks: len(passages)}

	if p.embedder == nil {
		return result, nil
	}

	points := make([]Point, 0, len(passages))
	for i, passage := range passages {
		embedding, err := p.embedder.GenerateEmbedding(ctx, passage.Text)
		if err != nil {
			slog.Error("Failed to generate embedding", "document_id", doc.ID, "chunk", i, "error", err)
			return result, nil
		}
		points = append(points, Point{ID: passage.ID, Vector: embedding, Passage: passage})
	}

	if err := p.index.Upsert(ctx, points); err != nil {
		slog.Error("Failed to upsert points", "document_id", doc.ID, "error", err)
		return result, nil
	}

	p.store.MarkIndexed(doc.ID)
	result.Indexed = true
	return result, nil
}

// Retrieve searches for relevant passages based on a query
func (p *Pipeline) Retrieve(ctx context.Context, query string, k int) []Result {
	return p.retriever.Retrieve(ctx, query, k)
}

// Health reports the pipeline state and runs a test query
func (p *Pipeline) Health(ctx context.Context) Health {
	h := Health{
		Initialized:          true,
		VectorstoreAvailable: p.index != nil,
		EmbeddingsAvailable:  p.embedder != nil,
		DocumentCount:        p.store.Documents(),
		PassageCount:         p.store.Len(),
		SearchMode:           p.retriever.Mode(),
	}
	if p.index != nil {
		h.VectorIndex = p.index.Name()
	}

	h.TestQuerySuccessful = len(p.Retrieve(ctx, "test query", 1)) > 0
	return h
}
