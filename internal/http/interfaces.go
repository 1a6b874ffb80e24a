package http

import (
	"context"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/assistant"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/rag"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/responder"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/speech"
)

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=http

// Assistant answers questions from the knowledge base
type Assistant interface {
	Ask(ctx context.Context, query string, conv responder.Conversation) assistant.AnswerResult
}

// KnowledgeBase defines the RAG pipeline operations exposed over HTTP
type KnowledgeBase interface {
	Ingest(ctx context.Context, doc rag.Document) (rag.IngestResult, error)
	Health(ctx context.Context) rag.Health
}

// Speech transcribes uploads and renders answers as audio
type Speech interface {
	Transcribe(ctx context.Context, audio speech.Audio) string
	Synthesize(ctx context.Context, text string, voice speech.Voice, speed float64) ([]byte, error)
	Health(ctx context.Context) speech.Health
}

// LanguageModel reports the answer generation backend
type LanguageModel interface {
	Health(ctx context.Context) responder.Health
}
