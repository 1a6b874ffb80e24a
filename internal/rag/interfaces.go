package rag

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=rag

// Embedder defines the interface for embedding generation
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// TextChunker defines the interface for text chunking operations
type TextChunker interface {
	ChunkText(text string) []string
}

// VectorIndex defines the interface for vector database operations
type VectorIndex interface {
	Name() string
	EnsureCollection(ctx context.Context, vectorSize uint64) error
	Upsert(ctx context.Context, points []Point) error
	Search(ctx context.Context, vector []float32, limit uint64) ([]Match, error)
}

// Point is an embedded passage stored in a vector index
type Point struct {
	ID      string
	Vector  []float32
	Passage Passage
}

// Match is a passage returned by a vector search with its cosine similarity
type Match struct {
	Passage    Passage
	Similarity float32
}
