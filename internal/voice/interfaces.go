package voice

import (
	"context"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/speech"
)

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=voice

// Backend answers a caller: it transcribes the recording and answers the
// question
type Backend interface {
	Transcribe(ctx context.Context, audio speech.Audio) (string, error)
	Ask(ctx context.Context, query string) (string, error)
}

// RecordingFetcher downloads a call recording
type RecordingFetcher interface {
	Fetch(ctx context.Context, recordingURL string) (speech.Audio, error)
}
