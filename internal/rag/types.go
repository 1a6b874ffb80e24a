package rag

// Document is a source text with its metadata (title, category, source, ...)
type Document struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// Title returns the document title or its ID
func (d Document) Title() string {
	if t := d.Metadata["title"]; t != "" {
		return t
	}
	return d.ID
}

// Passage is one chunk of a document, the unit of retrieval
type Passage struct {
	ID         string
	DocumentID string
	Text       string
	Metadata   map[string]string
	// Seq is the global ingestion order, used to break relevance ties
	Seq int
}

// Result is a passage ranked for a query
type Result struct {
	Passage Passage
	// Score is the distance reported to clients, 1 - Relevance
	Score float64
	// Relevance is in [0, 1], higher is better
	Relevance float64
}
