package rag

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Store keeps every ingested passage in memory. It is the source of truth
// for lexical search and for health reporting, and it tracks which
// documents have vectors in the index.
type Store struct {
	mu       sync.RWMutex
	passages []Passage
	byID     map[string]Passage
	// indexed holds one entry per stored document, true once its vectors
	// are in the index
	indexed map[string]bool
	nextSeq int
}

func NewStore() *Store {
	return &Store{
		byID:    make(map[string]Passage),
		indexed: make(map[string]bool),
	}
}

// Add records the chunks of doc as passages and returns them with their
// IDs and sequence numbers assigned. Passages previously stored under the
// same document ID are replaced. The document starts out unindexed.
func (s *Store) Add(doc Document, chunks []string) []Passage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexed[doc.ID]; ok {
		s.passages = slices.DeleteFunc(s.passages, func(p Passage) bool {
			if p.DocumentID != doc.ID {
				return false
			}
			delete(s.byID, p.ID)
			return true
		})
	}

	added := make([]Passage, 0, len(chunks))
	for i, chunk := range chunks {
		p := Passage{
			ID:         fmt.Sprintf("%s#%d", doc.ID, i),
			DocumentID: doc.ID,
			Text:       chunk,
			Metadata:   maps.Clone(doc.Metadata),
			Seq:        s.nextSeq,
		}
		s.nextSeq++
		s.passages = append(s.passages, p)
		s.byID[p.ID] = p
		added = append(added, p)
	}
	s.indexed[doc.ID] = false

	return added
}

// MarkIndexed records that the vectors of docID are in the index
func (s *Store) MarkIndexed(docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexed[docID]; ok {
		s.indexed[docID] = true
	}
}

// Passage returns the current passage with the given ID, if its document is
// indexed. Vector matches for replaced or unindexed passages are stale.
func (s *Store) Passage(id string) (Passage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok || !s.indexed[p.DocumentID] {
		return Passage{}, false
	}
	return p, true
}

// Passages returns a snapshot of all passages in ingestion order
func (s *Store) Passages() []Passage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.passages)
}

// Unindexed returns the passages without vectors, in ingestion order
func (s *Store) Unindexed() []Passage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Passage
	for _, p := range s.passages {
		if !s.indexed[p.DocumentID] {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.passages)
}

func (s *Store) Documents() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.indexed)
}
