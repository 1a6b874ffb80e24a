package responder

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/rag"
)

// BackendKind identifies the generation backend chosen at startup
type BackendKind int

const (
	// Canned answers from keyword rules, no model involved
	Canned BackendKind = iota
	// Hosted is a self-hosted model (Ollama)
	Hosted
	// Remote is the OpenAI API
	Remote
)

func (k BackendKind) String() string {
	switch k {
	case Hosted:
		return "ollama"
	case Remote:
		return "openai"
	default:
		return "canned"
	}
}

const probeMessage = "Hello, this is a test."

// Request is everything a generator may use to answer
type Request struct {
	System string
	Prompt string
	Query  string
}

// Candidate is a model backend considered at startup, in priority order
type Candidate struct {
	Kind    BackendKind
	Model   ChatModel
	Name    string
	APIBase string
}

// Health is the responder status reported by GET /health
type Health struct {
	Initialized         bool   `json:"initialized"`
	Provider            string `json:"provider"`
	ModelName           string `json:"model_name"`
	APIBase             string `json:"api_base,omitempty"`
	TestQuerySuccessful bool   `json:"test_query_successful"`
	ResponseLength      int    `json:"response_length"`
}

// Responder turns a question and retrieved passages into an answer
type Responder struct {
	kind         BackendKind
	generator    Generator
	modelName    string
	apiBase      string
	systemPrompt string
}

// New creates a responder around an already chosen generator
func New(kind BackendKind, generator Generator, modelName, apiBase, systemPrompt string) *Responder {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &Responder{
		kind:         kind,
		generator:    generator,
		modelName:    modelName,
		apiBase:      apiBase,
		systemPrompt: systemPrompt,
	}
}

// Select probes the candidates in order with a short test message and keeps
// the first one that answers. Without any, answers come from canned rules.
func Select(ctx context.Context, systemPrompt string, candidates ...Candidate) *Responder {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}

	for _, c := range candidates {
		if c.Model == nil {
			continue
		}

		reply, err := c.Model.GenerateAnswer(ctx, systemPrompt, probeMessage)
		if err != nil {
			slog.Warn("Language model unavailable", "provider", c.Kind, "model", c.Name, "error", err)
			continue
		}
		if strings.TrimSpace(reply) == "" {
			slog.Warn("Language model returned an empty probe reply", "provider", c.Kind, "model", c.Name)
			continue
		}

		slog.Info("Language model initialized", "provider", c.Kind, "model", c.Name)
		return New(c.Kind, modelGenerator{model: c.Model}, c.Name, c.APIBase, systemPrompt)
	}

	slog.Warn("No language model available, using canned responses")
	return New(Canned, cannedGenerator{}, Canned.String(), "", systemPrompt)
}

// Kind returns the selected backend
func (r *Responder) Kind() BackendKind {
	return r.kind
}

// Answer never fails: backend errors turn into a fallback text that echoes
// the query
func (r *Responder) Answer(ctx context.Context, query string, results []rag.Result, conv Conversation) string {
	req := Request{
		System: r.systemPrompt,
		Prompt: BuildPrompt(query, results, conv),
		Query:  query,
	}

	answer, err := r.generator.Generate(ctx, req)
	if err != nil {
		slog.Error("Error generating response", "provider", r.kind, "error", err, "query", query)
		return FallbackAnswer(query)
	}
	if strings.TrimSpace(answer) == "" {
		return emptyAnswer
	}

	return answer
}

// Health runs a test question through the responder
func (r *Responder) Health(ctx context.Context) Health {
	answer := r.Answer(ctx, probeMessage, nil, Conversation{})
	return Health{
		Initialized:         true,
		Provider:            r.kind.String(),
		ModelName:           r.modelName,
		APIBase:             r.apiBase,
		TestQuerySuccessful: answer != "",
		ResponseLength:      len(answer),
	}
}

type modelGenerator struct {
	model ChatModel
}

func (g modelGenerator) Generate(ctx context.Context, req Request) (string, error) {
	return g.model.GenerateAnswer(ctx, req.System, req.Prompt)
}

type cannedGenerator struct{}

func (cannedGenerator) Generate(_ context.Context, req Request) (string, error) {
	return CannedAnswer(req.Query), nil
}
