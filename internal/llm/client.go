package llm

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// Client wraps an OpenAI-compatible API (OpenAI itself, Ollama's /v1
// endpoint or a local whisper server) and provides assistant-specific methods
type Client struct {
	client       *openai.Client
	baseURL      string
	model        string
	embedModel   string
	whisperModel string
	ttsModel     string

	timeout time.Duration
	limiter *rate.Limiter
}

// Option configures a Client
type Option func(*clientOptions)

type clientOptions struct {
	baseURL      string
	httpClient   *http.Client
	whisperModel string
	ttsModel     string
	timeout      time.Duration
	limiter      *rate.Limiter
}

// WithBaseURL points the client at another OpenAI-compatible server
func WithBaseURL(url string) Option {
	return func(o *clientOptions) {
		o.baseURL = url
	}
}

// WithHTTPClient replaces the transport, mostly for tests
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

func WithTranscriptionModel(model string) Option {
	return func(o *clientOptions) {
		o.whisperModel = model
	}
}

func WithSpeechModel(model string) Option {
	return func(o *clientOptions) {
		o.ttsModel = model
	}
}

// WithTimeout bounds every call made by the client
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithRateLimiter makes every call wait for a token first
func WithRateLimiter(limiter *rate.Limiter) Option {
	return func(o *clientOptions) {
		o.limiter = limiter
	}
}

// NewClient creates a new LLM client with API key
func NewClient(apiKey, model, embedModel string, options ...Option) *Client {
	opts := &clientOptions{
		whisperModel: "whisper-1",
		ttsModel:     "tts-1",
		timeout:      defaultTimeout,
	}
	for _, o := range options {
		o(opts)
	}

	// Failures go straight to the caller's fallback path
	requestOptions := []option.RequestOption{
		option.WithMaxRetries(0),
	}
	if apiKey != "" {
		requestOptions = append(requestOptions, option.WithAPIKey(apiKey))
	}
	if opts.baseURL != "" {
		opts.baseURL = strings.TrimRight(opts.baseURL, "/") + "/"
		requestOptions = append(requestOptions, option.WithBaseURL(opts.baseURL))
	}
	if opts.httpClient != nil {
		requestOptions = append(requestOptions, option.WithHTTPClient(opts.httpClient))
	}

	client := openai.NewClient(requestOptions...)
	return &Client{
		client:       &client,
		baseURL:      opts.baseURL,
		model:        model,
		embedModel:   embedModel,
		whisperModel: opts.whisperModel,
		ttsModel:     opts.ttsModel,
		timeout:      opts.timeout,
		limiter:      opts.limiter,
	}
}

// NewRateLimiter returns a limiter allowing perSecond calls with an equal
// burst, or nil when perSecond is not positive
func NewRateLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Model returns the chat model name
func (c *Client) Model() string {
	return c.model
}

// BaseURL returns the API base URL, empty for the SDK default
func (c *Client) BaseURL() string {
	return c.baseURL
}

// begin waits for the limiter and applies the call timeout
func (c *Client) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return ctx, func() {}, err
		}
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	return ctx, cancel, nil
}
