package rag

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
)

var _ VectorIndex = &MemoryIndex{}

// MemoryIndex is a brute-force cosine index kept in process memory
type MemoryIndex struct {
	mu         sync.RWMutex
	vectorSize uint64
	points     map[string]Point
}

func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		points: make(map[string]Point),
	}
}

func (m *MemoryIndex) Name() string {
	return "memory"
}

// EnsureCollection fixes the vector size on first use
func (m *MemoryIndex) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.vectorSize != 0 && m.vectorSize != vectorSize {
		return fmt.Errorf("index already holds vectors of size %d, got %d", m.vectorSize, vectorSize)
	}
	m.vectorSize = vectorSize
	return nil
}

func (m *MemoryIndex) Upsert(ctx context.Context, points []Point) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range points {
		if m.vectorSize == 0 {
			m.vectorSize = uint64(len(p.Vector))
		}
		if uint64(len(p.Vector)) != m.vectorSize {
			return fmt.Errorf("point %s has vector size %d, want %d", p.ID, len(p.Vector), m.vectorSize)
		}
	}
	for _, p := range points {
		m.points[p.ID] = p
	}
	return nil
}

func (m *MemoryIndex) Search(ctx context.Context, vector []float32, limit uint64) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]Match, 0, len(m.points))
	for _, p := range m.points {
		matches = append(matches, Match{
			Passage:    p.Passage,
			Similarity: cosineSimilarity(vector, p.Vector),
		})
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(b.Similarity, a.Similarity); c != 0 {
			return c
		}
		return cmp.Compare(a.Passage.Seq, b.Passage.Seq)
	})

	if n := min(int(limit), len(matches)); n < len(matches) {
		matches = matches[:n]
	}
	return matches, nil
}

// cosineSimilarity returns 0 for mismatched or zero vectors
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
