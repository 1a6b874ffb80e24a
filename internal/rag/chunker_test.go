package rag

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunker_ChunkText(t *testing.T) {
	tests := []struct {
		name         string
		chunkSize    int
		chunkOverlap int
		text         string
		want         []string
	}{
		{
			name:         "empty text",
			chunkSize:    100,
			chunkOverlap: 20,
			text:         "",
			want:         []string{},
		},
		{
			name:         "text smaller than chunk size",
			chunkSize:    100,
			chunkOverlap: 20,
			text:         "This is a short text",
			want:         []string{"This is a short text"},
		},
		{
			name:         "text exactly chunk size",
			chunkSize:    18,
			chunkOverlap: 5,
			text:         "This is exactly 18",
			want:         []string{"This is exactly 18"},
		},
		{
			name:         "splits on words without overlap",
			chunkSize:    10,
			chunkOverlap: 0,
			text:         "one two three four five six",
			want:         []string{"one two ", "three ", "four five ", "six"},
		},
		{
			name:         "prefers paragraph boundaries",
			chunkSize:    5,
			chunkOverlap: 0,
			text:         "aaa\n\nbbb",
			want:         []string{"aaa\n\n", "bbb"},
		},
		{
			name:         "hard cut with overlap",
			chunkSize:    4,
			chunkOverlap: 1,
			text:         "abcdefghij",
			want:         []string{"abcd", "defg", "ghij"},
		},
		{
			name:         "sizes count code points",
			chunkSize:    2,
			chunkOverlap: 0,
			text:         "ééééé",
			want:         []string{"éé", "éé", "é"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(tt.chunkSize, tt.chunkOverlap)
			got := c.ChunkText(tt.text)

			if len(got) != len(tt.want) {
				t.Fatalf("ChunkText() returned %d chunks, want %d: %q", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ChunkText()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunker_Properties(t *testing.T) {
	paragraph := "SNAP helps low income households buy food. Eligibility depends on income, household size and expenses.\n" +
		"Apply online or at a local office.\n\n"
	texts := []string{
		strings.Repeat(paragraph, 12),
		strings.Repeat("word ", 400),
		strings.Repeat("x", 2500),
		strings.Repeat("Résumé naïve café. ", 150),
	}
	configs := []struct {
		size, overlap int
	}{
		{1000, 200},
		{100, 20},
		{50, 0},
		{30, 29},
		{7, 3},
	}

	for _, text := range texts {
		for _, cfg := range configs {
			c := NewChunker(cfg.size, cfg.overlap)

			var chunks []Chunk
			for chunk := range c.Chunks(text) {
				chunks = append(chunks, chunk)
			}
			if len(chunks) == 0 {
				t.Fatalf("size=%d overlap=%d: no chunks", cfg.size, cfg.overlap)
			}

			rebuilt := chunks[0].Text
			for i, chunk := range chunks {
				if n := utf8.RuneCountInString(chunk.Text); n > cfg.size || n == 0 {
					t.Fatalf("size=%d overlap=%d: chunk %d has %d code points", cfg.size, cfg.overlap, i, n)
				}
				if text[chunk.Offset:chunk.Offset+len(chunk.Text)] != chunk.Text {
					t.Fatalf("size=%d overlap=%d: chunk %d is not a substring at its offset", cfg.size, cfg.overlap, i)
				}
				if i == 0 {
					continue
				}

				prev := chunks[i-1]
				prevEnd := prev.Offset + len(prev.Text)
				shared := text[chunk.Offset:prevEnd]
				wantShared := min(cfg.overlap, utf8.RuneCountInString(prev.Text))
				if got := utf8.RuneCountInString(shared); got != wantShared {
					t.Fatalf("size=%d overlap=%d: chunk %d shares %d code points, want %d", cfg.size, cfg.overlap, i, got, wantShared)
				}
				if !strings.HasSuffix(prev.Text, shared) {
					t.Fatalf("size=%d overlap=%d: chunk %d does not start with the previous chunk's tail", cfg.size, cfg.overlap, i)
				}
				rebuilt += chunk.Text[len(shared):]
			}

			if rebuilt != text {
				t.Errorf("size=%d overlap=%d: removing overlaps does not rebuild the text", cfg.size, cfg.overlap)
			}
		}
	}
}

func TestChunker_ChunksIsRestartable(t *testing.T) {
	c := NewChunker(10, 2)
	seq := c.Chunks("one two three four five six seven")

	var first, second []string
	for chunk := range seq {
		first = append(first, chunk.Text)
	}
	for chunk := range seq {
		second = append(second, chunk.Text)
		break
	}

	if len(first) < 2 {
		t.Fatalf("Chunks() yielded %d chunks, want several", len(first))
	}
	if len(second) != 1 || second[0] != first[0] {
		t.Errorf("second iteration = %q, want it to start over at %q", second, first[0])
	}
}

func TestNewChunker_Clamps(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		overlap     int
		wantSize    int
		wantOverlap int
	}{
		{name: "defaults size", size: 0, overlap: 10, wantSize: 1000, wantOverlap: 10},
		{name: "negative overlap", size: 100, overlap: -5, wantSize: 100, wantOverlap: 0},
		{name: "overlap not below size", size: 100, overlap: 100, wantSize: 100, wantOverlap: 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(tt.size, tt.overlap)
			if c.chunkSize != tt.wantSize || c.chunkOverlap != tt.wantOverlap {
				t.Errorf("NewChunker(%d, %d) = (%d, %d), want (%d, %d)",
					tt.size, tt.overlap, c.chunkSize, c.chunkOverlap, tt.wantSize, tt.wantOverlap)
			}
		})
	}
}
