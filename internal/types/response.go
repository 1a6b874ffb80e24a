package types

import "encoding/json"

// QueryRequest represents a text query. UserContext is either a list of
// prior conversation turns or a single object of extra user details.
type QueryRequest struct {
	Query       string          `json:"query"`
	UserContext json.RawMessage `json:"user_context,omitempty"`
}

// Source is a passage that backed an answer
type Source struct {
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata"`
	Score     float64           `json:"score"`
	Relevance float64           `json:"relevance"`
}

// QueryResponse represents a query response
type QueryResponse struct {
	Response   string   `json:"response"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
}

// IngestRequest adds a document to the knowledge base
type IngestRequest struct {
	Text     string            `json:"text"`
	ID       string            `json:"id,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type IngestResponse struct {
	Status     string `json:"status"`
	DocumentID string `json:"document_id"`
	Chunks     int    `json:"chunks"`
	Indexed    bool   `json:"indexed"`
}

type TranscriptionResponse struct {
	Transcription string `json:"transcription"`
	Language      string `json:"language,omitempty"`
}

// SynthesizeRequest is the body of /voice/synthesize and /voice/process.
// Speed is a pointer so an explicit 0 can be told apart from a missing value.
type SynthesizeRequest struct {
	Text        string          `json:"text"`
	Voice       string          `json:"voice,omitempty"`
	Speed       *float64        `json:"speed,omitempty"`
	UserContext json.RawMessage `json:"user_context,omitempty"`
}

// SynthesisResponse carries MP3 audio, base64 encoded by encoding/json
type SynthesisResponse struct {
	AudioData []byte  `json:"audio_data"`
	Format    string  `json:"format"`
	Duration  float64 `json:"duration"`
	WordCount int     `json:"word_count"`
}

type ProcessResponse struct {
	TextResponse string   `json:"text_response"`
	AudioData    []byte   `json:"audio_data"`
	Sources      []Source `json:"sources"`
	Confidence   float64  `json:"confidence"`
}

// HealthResponse reports every service; Status is "healthy" or "unhealthy"
type HealthResponse struct {
	Status   string         `json:"status"`
	Services map[string]any `json:"services,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type RootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
