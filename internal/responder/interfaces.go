package responder

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=mock_interfaces.go -package=responder

// ChatModel defines the interface for LLM answer generation
type ChatModel interface {
	GenerateAnswer(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Generator produces an answer for an assembled request
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
