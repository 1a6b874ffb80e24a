package rag

import (
	"iter"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultSeparators are tried in order: paragraphs, lines, words, then a
// hard cut at the chunk size.
var DefaultSeparators = []string{"\n\n", "\n", " ", ""}

// Chunk is a piece of the source text and its byte offset in it
type Chunk struct {
	Text   string
	Offset int
}

// Chunker handles text chunking with overlap support. Sizes are measured in
// code points.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
}

// NewChunker creates a new chunker with specified size and overlap.
// A non-positive size falls back to 1000 and the overlap is clamped to
// [0, size).
func NewChunker(chunkSize, chunkOverlap int, separators ...string) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 0
	}
	if chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize - 1
	}
	if len(separators) == 0 {
		separators = DefaultSeparators
	}

	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		separators:   separators,
	}
}

// ChunkText splits text into chunks with overlap
func (c *Chunker) ChunkText(text string) []string {
	chunks := []string{}
	for chunk := range c.Chunks(text) {
		chunks = append(chunks, chunk.Text)
	}
	return chunks
}

// Chunks lazily yields the chunks of text in order. Every chunk is an exact
// substring of text, and every chunk after the first starts with the last
// min(overlap, len(previous)) code points of the previous one.
func (c *Chunker) Chunks(text string) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		if text == "" {
			return
		}

		levels := c.boundaries(text)
		start, prevEnd, overlap := 0, 0, 0
		for {
			end := c.nextEnd(text, levels, start, prevEnd, overlap)
			if !yield(Chunk{Text: text[start:end], Offset: start}) {
				return
			}
			if end >= len(text) {
				return
			}

			overlap = min(c.chunkOverlap, utf8.RuneCountInString(text[start:end]))
			start = backRunes(text, end, overlap)
			prevEnd = end
		}
	}
}

// boundaries returns, per non-empty separator, the sorted byte positions
// right after each occurrence.
func (c *Chunker) boundaries(text string) [][]int {
	levels := make([][]int, 0, len(c.separators))
	for _, sep := range c.separators {
		if sep == "" {
			continue
		}
		var positions []int
		for i := 0; i < len(text); {
			j := strings.Index(text[i:], sep)
			if j < 0 {
				break
			}
			i += j + len(sep)
			positions = append(positions, i)
		}
		levels = append(levels, positions)
	}
	return levels
}

// nextEnd picks where the chunk starting at start ends. The end must pass
// prevEnd. A separator boundary is only taken if it adds at least a quarter
// of the space left after the overlap, otherwise a finer separator is tried.
func (c *Chunker) nextEnd(text string, levels [][]int, start, prevEnd, overlap int) int {
	if utf8.RuneCountInString(text[start:]) <= c.chunkSize {
		return len(text)
	}

	minGain := max(1, (c.chunkSize-overlap)/4)
	for _, positions := range levels {
		from := sort.SearchInts(positions, prevEnd+1)
		candidates := positions[from:]
		n := sort.Search(len(candidates), func(i int) bool {
			return utf8.RuneCountInString(text[start:candidates[i]]) > c.chunkSize
		})
		if n == 0 {
			continue
		}
		end := candidates[n-1]
		if utf8.RuneCountInString(text[prevEnd:end]) >= minGain {
			return end
		}
	}

	return forwardRunes(text, start, c.chunkSize)
}

func forwardRunes(text string, pos, n int) int {
	for ; n > 0 && pos < len(text); n-- {
		_, size := utf8.DecodeRuneInString(text[pos:])
		pos += size
	}
	return pos
}

func backRunes(text string, pos, n int) int {
	for ; n > 0 && pos > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(text[:pos])
		pos -= size
	}
	return pos
}
