package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	LogLevel    string
	LogFormat   string
	CORSOrigins []string

	// OpenAI configuration (remote chat, embeddings, transcription, speech)
	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIModel        string
	OpenAIEmbedModel   string
	OpenAIWhisperModel string
	OpenAITTSModel     string

	// Ollama configuration (locally hosted chat and embeddings)
	OllamaBaseURL    string
	OllamaModel      string
	OllamaEmbedModel string

	// Local whisper server speaking the OpenAI transcription API
	LocalWhisperURL   string
	LocalWhisperModel string

	// Qdrant configuration, an empty host keeps the index in memory
	QdrantHost       string
	QdrantPort       int
	QdrantCollection string

	// RAG configuration
	ChunkSize       int
	ChunkOverlap    int
	SearchLimit     int
	EmbedDimensions int
	DataDir         string
	PromptsDir      string

	// Backend call limits
	BackendTimeout   time.Duration
	BackendRateLimit float64

	// Telephony configuration
	SessionTTL        time.Duration
	SessionCapacity   int
	TwilioAccountSID  string
	TwilioAuthToken   string
	VoicePort         string
	VoiceBackendURL   string
	TelephonyBasePath string
	// PublicBaseURL is the externally visible scheme and host of the
	// webhooks; with an auth token it turns on signature validation
	PublicBaseURL string
}

// LoadConfig loads configuration from environment variables and command-line flags
// Flags take precedence over environment variables
func LoadConfig() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse builds the configuration from args on top of the environment.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("navigator", flag.ContinueOnError)

	// Define flags
	serverPort := fs.String("server-port", getEnv("SERVER_PORT", "8000"), "Server port")
	logLevel := fs.String("log-level", getEnv("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", getEnv("LOG_FORMAT", "text"), "Log format (text, json)")
	corsOrigins := fs.String("cors-origins", getEnv("CORS_ORIGINS", "*"), "Comma separated list of allowed CORS origins")

	openAIKey := fs.String("openai-key", getEnv("OPENAI_API_KEY", ""), "OpenAI API key")
	openAIBaseURL := fs.String("openai-base-url", getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1/"), "OpenAI API base URL")
	openAIModel := fs.String("openai-model", getEnv("OPENAI_MODEL", "gpt-4.1-mini"), "OpenAI model for chat completions")
	openAIEmbedModel := fs.String("openai-embed-model", getEnv("OPENAI_EMBED_MODEL", "text-embedding-3-large"), "OpenAI model for embeddings")
	openAIWhisperModel := fs.String("openai-whisper-model", getEnv("OPENAI_WHISPER_MODEL", "whisper-1"), "OpenAI model for transcription")
	openAITTSModel := fs.String("openai-tts-model", getEnv("OPENAI_TTS_MODEL", "tts-1"), "OpenAI model for speech synthesis")

	ollamaBaseURL := fs.String("ollama-base-url", getEnv("LLM_API_BASE", "http://localhost:11434/v1/"), "Ollama OpenAI-compatible base URL")
	ollamaModel := fs.String("ollama-model", getEnv("LLM_MODEL", "mixtral:8x7b"), "Ollama model for chat completions")
	ollamaEmbedModel := fs.String("ollama-embed-model", getEnv("LLM_EMBED_MODEL", "all-minilm"), "Ollama model for embeddings")

	localWhisperURL := fs.String("local-whisper-url", getEnv("LOCAL_WHISPER_URL", ""), "Base URL of a local OpenAI-compatible transcription server")
	localWhisperModel := fs.String("local-whisper-model", getEnv("LOCAL_WHISPER_MODEL", "base"), "Model name for the local transcription server")

	qdrantHost := fs.String("qdrant-host", getEnv("QDRANT_HOST", ""), "Qdrant host (empty keeps the vector index in memory)")
	qdrantPort := fs.Int("qdrant-port", getEnvAsInt("QDRANT_PORT", 6334), "Qdrant gRPC port (default: 6334)")
	qdrantCollection := fs.String("qdrant-collection", getEnv("QDRANT_COLLECTION", "benefits"), "Qdrant collection name")

	chunkSize := fs.Int("chunk-size", getEnvAsInt("CHUNK_SIZE", 1000), "Text chunk size")
	chunkOverlap := fs.Int("chunk-overlap", getEnvAsInt("CHUNK_OVERLAP", 200), "Text chunk overlap")
	searchLimit := fs.Int("search-limit", getEnvAsInt("SEARCH_LIMIT", 5), "Number of search results to return")
	embedDimensions := fs.Int("embed-dimensions", getEnvAsInt("EMBED_DIMENSIONS", 3072), "Embedding vector size")
	dataDir := fs.String("data-dir", getEnv("DATA_DIR", "data"), "Directory with .txt, .md and .pdf documents")
	promptsDir := fs.String("prompts-dir", getEnv("PROMPTS_DIR", "prompts"), "Directory with prompt overrides")

	backendTimeout := fs.Duration("backend-timeout", getEnvAsDuration("BACKEND_TIMEOUT", 30*time.Second), "Timeout for each model, speech and telephony call")
	backendRateLimit := fs.Float64("backend-rate-limit", getEnvAsFloat("BACKEND_RATE_LIMIT", 0), "Backend calls per second (0 disables limiting)")

	sessionTTL := fs.Duration("session-ttl", getEnvAsDuration("SESSION_TTL", 30*time.Minute), "How long call state is kept")
	sessionCapacity := fs.Int("session-capacity", getEnvAsInt("SESSION_CAPACITY", 10000), "Maximum number of tracked calls")
	twilioSID := fs.String("twilio-account-sid", getEnv("TWILIO_ACCOUNT_SID", ""), "Twilio account SID")
	twilioToken := fs.String("twilio-auth-token", getEnv("TWILIO_AUTH_TOKEN", ""), "Twilio auth token")
	voicePort := fs.String("voice-port", getEnv("VOICE_PORT", "5001"), "Port of the standalone telephony server")
	voiceBackendURL := fs.String("voice-backend-url", getEnv("BACKEND_API_URL", "http://localhost:8000"), "API base URL used by the standalone telephony server")
	telephonyBasePath := fs.String("telephony-base-path", getEnv("TELEPHONY_BASE_PATH", "/telephony"), "Path prefix of the telephony webhooks")

	publicBaseURL := fs.String("public-base-url", getEnv("PUBLIC_BASE_URL", ""), "Public base URL of the telephony webhooks, enables signature validation")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// Set config values
	cfg.ServerPort = *serverPort
	cfg.LogLevel = *logLevel
	cfg.LogFormat = *logFormat
	cfg.CORSOrigins = splitList(*corsOrigins)
	cfg.OpenAIAPIKey = *openAIKey
	cfg.OpenAIBaseURL = *openAIBaseURL
	cfg.OpenAIModel = *openAIModel
	cfg.OpenAIEmbedModel = *openAIEmbedModel
	cfg.OpenAIWhisperModel = *openAIWhisperModel
	cfg.OpenAITTSModel = *openAITTSModel
	cfg.OllamaBaseURL = *ollamaBaseURL
	cfg.OllamaModel = *ollamaModel
	cfg.OllamaEmbedModel = *ollamaEmbedModel
	cfg.LocalWhisperURL = *localWhisperURL
	cfg.LocalWhisperModel = *localWhisperModel
	cfg.QdrantHost = *qdrantHost
	cfg.QdrantPort = *qdrantPort
	cfg.QdrantCollection = *qdrantCollection
	cfg.ChunkSize = *chunkSize
	cfg.ChunkOverlap = *chunkOverlap
	cfg.SearchLimit = *searchLimit
	cfg.EmbedDimensions = *embedDimensions
	cfg.DataDir = *dataDir
	cfg.PromptsDir = *promptsDir
	cfg.BackendTimeout = *backendTimeout
	cfg.BackendRateLimit = *backendRateLimit
	cfg.SessionTTL = *sessionTTL
	cfg.SessionCapacity = *sessionCapacity
	cfg.TwilioAccountSID = *twilioSID
	cfg.TwilioAuthToken = *twilioToken
	cfg.VoicePort = *voicePort
	cfg.VoiceBackendURL = *voiceBackendURL
	cfg.TelephonyBasePath = "/" + strings.Trim(*telephonyBasePath, "/")
	cfg.PublicBaseURL = strings.TrimRight(*publicBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the services cannot run with
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("chunk overlap must be in [0, %d), got %d", c.ChunkSize, c.ChunkOverlap)
	}
	if c.SearchLimit <= 0 {
		return fmt.Errorf("search limit must be positive, got %d", c.SearchLimit)
	}
	if c.EmbedDimensions <= 0 {
		return fmt.Errorf("embedding dimensions must be positive, got %d", c.EmbedDimensions)
	}
	if c.SessionCapacity <= 0 {
		return fmt.Errorf("session capacity must be positive, got %d", c.SessionCapacity)
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("backend timeout must be positive, got %s", c.BackendTimeout)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// NewLogger builds the process logger from the log level and format
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
