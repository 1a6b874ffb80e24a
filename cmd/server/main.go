package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/assistant"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/config"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/llm"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/rag"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/responder"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/session"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/speech"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/voice"

	httphandler "github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/http"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	ctx := context.Background()
	limiter := llm.NewRateLimiter(cfg.BackendRateLimit)
	common := []llm.Option{llm.WithTimeout(cfg.BackendTimeout), llm.WithRateLimiter(limiter)}

	// OpenAI serves chat, embeddings, transcription and speech when a key is set
	var openAIClient *llm.Client
	if cfg.OpenAIAPIKey != "" {
		openAIClient = llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIEmbedModel, append(common,
			llm.WithBaseURL(cfg.OpenAIBaseURL),
			llm.WithTranscriptionModel(cfg.OpenAIWhisperModel),
			llm.WithSpeechModel(cfg.OpenAITTSModel),
		)...)
		slog.Info("Initialized OpenAI client", "model", cfg.OpenAIModel)
	} else {
		slog.Warn("OpenAI API key not set, remote models disabled")
	}
	ollamaClient := llm.NewClient("", cfg.OllamaModel, cfg.OllamaEmbedModel, append(common, llm.WithBaseURL(cfg.OllamaBaseURL))...)

	// Initialize RAG pipeline
	embedder, vectorSize := probeEmbedder(ctx, openAIClient, ollamaClient)
	index := newIndex(cfg, embedder)

	chunker := rag.NewChunker(cfg.ChunkSize, cfg.ChunkOverlap)
	slog.Info("Initialized chunker", "size", cfg.ChunkSize, "overlap", cfg.ChunkOverlap)

	if vectorSize == 0 {
		vectorSize = cfg.EmbedDimensions
	}
	pipeline, err := rag.NewPipeline(ctx, chunker, embedder, index, cfg.SearchLimit, vectorSize)
	if err != nil && index != nil {
		slog.Warn("Vector index unavailable, using in-memory index", "index", index.Name(), "error", err)
		closeIndex(index)
		index = rag.NewMemoryIndex()
		pipeline, err = rag.NewPipeline(ctx, chunker, embedder, index, cfg.SearchLimit, vectorSize)
	}
	if err != nil {
		slog.Error("Failed to create RAG pipeline", "error", err)
		os.Exit(1)
	}

	docs, err := loadDocuments(cfg.DataDir)
	if err != nil {
		slog.Error("Failed to load documents", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}
	for _, doc := range docs {
		if _, err := pipeline.Ingest(ctx, doc); err != nil {
			slog.Warn("Failed to ingest document", "doc_id", doc.ID, "error", err)
		}
	}
	slog.Info("Initialized RAG pipeline", "documents", len(docs), "search_mode", pipeline.Health(ctx).SearchMode)

	// Pick the answer backend: local Ollama first, then OpenAI, then canned rules
	systemPrompt, err := responder.LoadSystemPrompt(cfg.PromptsDir)
	if err != nil {
		slog.Error("Failed to load system prompt", "error", err)
		os.Exit(1)
	}
	candidates := []responder.Candidate{
		{Kind: responder.Hosted, Model: ollamaClient, Name: cfg.OllamaModel, APIBase: ollamaClient.BaseURL()},
	}
	if openAIClient != nil {
		candidates = append(candidates, responder.Candidate{
			Kind: responder.Remote, Model: openAIClient, Name: cfg.OpenAIModel, APIBase: openAIClient.BaseURL(),
		})
	}
	answers := responder.Select(ctx, systemPrompt, candidates...)

	// Speech: remote whisper, then a local whisper server; OpenAI speech for audio
	var remoteSTT, localSTT speech.Transcriber
	var synth speech.Synthesizer
	if openAIClient != nil {
		remoteSTT = openAIClient
		synth = openAIClient
	} else {
		slog.Warn("No speech synthesis engine configured")
	}
	if cfg.LocalWhisperURL != "" {
		localSTT = llm.NewClient("", "", "", append(common,
			llm.WithBaseURL(cfg.LocalWhisperURL),
			llm.WithTranscriptionModel(cfg.LocalWhisperModel),
		)...)
		slog.Info("Initialized local transcription", "url", cfg.LocalWhisperURL)
	}
	speechAdapter := speech.NewAdapter(remoteSTT, localSTT, synth)

	service := assistant.NewService(pipeline, answers)

	// Initialize HTTP handlers
	handler := httphandler.NewHandlers(service, pipeline, speechAdapter, answers)

	// Create router
	r := httphandler.NewRouter(handler, httphandler.RouterOptions{
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: 3 * cfg.BackendTimeout,
	})

	// Telephony webhooks answered in process
	calls := session.New[voice.Call](cfg.SessionCapacity, cfg.SessionTTL)
	voiceHandler := voice.NewHandler(
		voice.NewInProcess(speechAdapter, service),
		voice.NewTwilioFetcher(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.BackendTimeout),
		calls,
		cfg.TelephonyBasePath,
		voice.WithSignatureValidation(cfg.TwilioAuthToken, cfg.PublicBaseURL),
	)
	r.Mount(cfg.TelephonyBasePath, voiceHandler.Routes())

	// Create HTTP server
	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server running", "port", cfg.ServerPort, "responder", answers.Kind())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	closeIndex(index)

	slog.Info("Server exited")
}

func closeIndex(index rag.VectorIndex) {
	if closer, ok := index.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("Failed to close vector index", "error", err)
		}
	}
}

// probeEmbedder returns the first embedding backend that answers, with its
// vector size. Without one retrieval runs on keywords only.
func probeEmbedder(ctx context.Context, clients ...*llm.Client) (rag.Embedder, int) {
	for _, c := range clients {
		if c == nil {
			continue
		}
		vec, err := c.GenerateEmbedding(ctx, "test")
		if err != nil {
			slog.Warn("Embedding backend unavailable", "base_url", c.BaseURL(), "error", err)
			continue
		}
		if len(vec) == 0 {
			continue
		}
		slog.Info("Initialized embeddings", "base_url", c.BaseURL(), "dimensions", len(vec))
		return c, len(vec)
	}

	slog.Warn("No embedding backend available, using keyword search")
	return nil, 0
}

// newIndex connects to Qdrant when configured and keeps vectors in memory
// otherwise
func newIndex(cfg *config.Config, embedder rag.Embedder) rag.VectorIndex {
	if embedder == nil {
		return nil
	}

	if cfg.QdrantHost != "" {
		qdrantIndex, err := rag.NewQdrantIndex(cfg.QdrantHost, cfg.QdrantPort, cfg.QdrantCollection)
		if err == nil {
			slog.Info("Initialized Qdrant index", "host", cfg.QdrantHost, "collection", cfg.QdrantCollection)
			return qdrantIndex
		}
		slog.Warn("Failed to create Qdrant client, using in-memory index", "error", err)
	}

	return rag.NewMemoryIndex()
}

// loadDocuments reads the data directory. Without one the built-in sample
// documents are used.
func loadDocuments(dir string) ([]rag.Document, error) {
	docs, err := rag.LoadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Data directory not found, using sample documents", "dir", dir)
		return rag.SampleDocuments(), nil
	}
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		slog.Warn("No documents in data directory, using sample documents", "dir", dir)
		return rag.SampleDocuments(), nil
	}
	return docs, nil
}
