package assistant

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/rag"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/responder"
)

// promptPassages is how many passages are retrieved per question
const promptPassages = 5

// Retriever finds passages for a question
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) []rag.Result
}

// Answerer writes the answer text
type Answerer interface {
	Answer(ctx context.Context, query string, results []rag.Result, conv responder.Conversation) string
}

// AnswerResult is the outcome of a question
type AnswerResult struct {
	Text       string
	Sources    []rag.Result
	Confidence float64
}

// Service answers questions from the knowledge base. It is built once at
// startup and shared by the HTTP and telephony front doors.
type Service struct {
	retriever Retriever
	answerer  Answerer
}

func NewService(retriever Retriever, answerer Answerer) *Service {
	return &Service{
		retriever: retriever,
		answerer:  answerer,
	}
}

// Ask retrieves passages for query and answers it. Confidence is the
// relevance of the best passage, 0 when nothing matched.
func (s *Service) Ask(ctx context.Context, query string, conv responder.Conversation) AnswerResult {
	query = strings.TrimSpace(query)

	sources := s.retriever.Retrieve(ctx, query, promptPassages)
	text := s.answerer.Answer(ctx, query, sources, conv)

	var confidence float64
	if len(sources) > 0 {
		confidence = sources[0].Relevance
	}

	slog.Info("Answered query", "query", query, "sources", len(sources), "confidence", confidence)

	return AnswerResult{
		Text:       text,
		Sources:    sources,
		Confidence: confidence,
	}
}
