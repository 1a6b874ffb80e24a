package speech

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=speech

// Transcriber converts recorded audio to text
type Transcriber interface {
	Transcribe(ctx context.Context, filename, contentType string, audio []byte) (string, error)
}

// Synthesizer renders text as audio with an engine voice
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}
