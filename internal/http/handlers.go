package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/backend"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/rag"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/responder"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/speech"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/types"
)

const (
	// Version is reported by GET /
	Version = "1.0.0"

	maxUploadBytes = 32 << 20
)

type Handler struct {
	assistant Assistant
	knowledge KnowledgeBase
	speech    Speech
	model     LanguageModel
}

// NewHandlers initializes handlers with dependencies
func NewHandlers(assistant Assistant, knowledge KnowledgeBase, speech Speech, model LanguageModel) *Handler {
	return &Handler{
		assistant: assistant,
		knowledge: knowledge,
		speech:    speech,
		model:     model,
	}
}

// QueryHandler answers a text question
func (h *Handler) QueryHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req types.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(req.Query) == "" {
		errorResponse(w, http.StatusUnprocessableEntity, "Query is required", nil)
		return
	}

	conv, err := responder.ParseUserContext(req.UserContext)
	if err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, "Invalid user_context", err)
		return
	}

	res := h.assistant.Ask(r.Context(), req.Query, conv)

	writeJSON(w, types.QueryResponse{
		Response:   res.Text,
		Sources:    toSources(res.Sources),
		Confidence: res.Confidence,
	})
}

// IngestHandler adds a document to the knowledge base
func (h *Handler) IngestHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req types.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		errorResponse(w, http.StatusUnprocessableEntity, "Text is required", nil)
		return
	}

	// Ingest document into RAG pipeline
	res, err := h.knowledge.Ingest(r.Context(), rag.Document{
		ID:       req.ID,
		Text:     req.Text,
		Metadata: req.Metadata,
	})
	if err != nil {
		slog.Error("Error ingesting document", "error", err, "doc_id", req.ID)
		errorResponse(w, backend.HTTPStatus(err), "Failed to ingest document", err)
		return
	}

	writeJSON(w, types.IngestResponse{
		Status:     "success",
		DocumentID: res.DocumentID,
		Chunks:     res.Chunks,
		Indexed:    res.Indexed,
	})
}

// TranscribeHandler converts an uploaded recording to text. Audio that could
// not be transcribed yields an apology as the transcription.
func (h *Handler) TranscribeHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid multipart body", err)
		return
	}

	audio, err := formAudio(r, "audio_file", "file")
	if err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, "Audio file is required", err)
		return
	}

	text := h.speech.Transcribe(r.Context(), audio)

	writeJSON(w, types.TranscriptionResponse{
		Transcription: text,
		Language:      "en",
	})
}

// SynthesizeHandler renders text as MP3 audio
func (h *Handler) SynthesizeHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	req, voice, speed, ok := decodeSpeechRequest(w, r)
	if !ok {
		return
	}

	audio, err := h.speech.Synthesize(r.Context(), req.Text, voice, speed)
	if err != nil {
		slog.Error("Error synthesizing speech", "error", err)
		errorResponse(w, backend.HTTPStatus(err), "Failed to synthesize speech", err)
		return
	}

	writeJSON(w, types.SynthesisResponse{
		AudioData: audio,
		Format:    "mp3",
		Duration:  speech.EstimateDuration(req.Text, speed),
		WordCount: len(strings.Fields(req.Text)),
	})
}

// ProcessHandler answers a question and returns the answer as text and audio
func (h *Handler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	req, voice, speed, ok := decodeSpeechRequest(w, r)
	if !ok {
		return
	}

	conv, err := responder.ParseUserContext(req.UserContext)
	if err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, "Invalid user_context", err)
		return
	}

	ctx := r.Context()
	res := h.assistant.Ask(ctx, req.Text, conv)

	audio, err := h.speech.Synthesize(ctx, res.Text, voice, speed)
	if err != nil {
		slog.Error("Error synthesizing answer", "error", err)
		errorResponse(w, backend.HTTPStatus(err), "Failed to synthesize answer", err)
		return
	}

	writeJSON(w, types.ProcessResponse{
		TextResponse: res.Text,
		AudioData:    audio,
		Sources:      toSources(res.Sources),
		Confidence:   res.Confidence,
	})
}

// HealthHandler reports every service
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ragHealth := h.knowledge.Health(ctx)
	status := "healthy"
	if !ragHealth.Initialized {
		status = "unhealthy"
	}

	writeJSON(w, types.HealthResponse{
		Status: status,
		Services: map[string]any{
			"rag_service":    ragHealth,
			"llm_service":    h.model.Health(ctx),
			"speech_service": h.speech.Health(ctx),
		},
	})
}

func RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, types.RootResponse{
		Message: "Public Service Navigation Assistant API",
		Status:  "running",
		Version: Version,
	})
}

// decodeSpeechRequest reads and validates the body shared by synthesize and
// process, writing the error response itself
func decodeSpeechRequest(w http.ResponseWriter, r *http.Request) (types.SynthesizeRequest, speech.Voice, float64, bool) {
	var req types.SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return req, "", 0, false
	}

	if strings.TrimSpace(req.Text) == "" {
		errorResponse(w, http.StatusUnprocessableEntity, "Text is required", nil)
		return req, "", 0, false
	}

	voice, err := speech.ParseVoice(req.Voice)
	if err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, "Invalid voice", err)
		return req, "", 0, false
	}

	speed := speech.DefaultSpeed
	if req.Speed != nil {
		speed = *req.Speed
	}
	if err := speech.ValidateSpeed(speed); err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, "Invalid speed", err)
		return req, "", 0, false
	}

	return req, voice, speed, true
}

// formAudio reads the first present file field
func formAudio(r *http.Request, fields ...string) (speech.Audio, error) {
	var (
		file   multipart.File
		header *multipart.FileHeader
		err    error
	)
	for _, field := range fields {
		if file, header, err = r.FormFile(field); err == nil {
			break
		}
	}
	if err != nil {
		return speech.Audio{}, fmt.Errorf("no %s field: %w", strings.Join(fields, " or "), err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return speech.Audio{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return speech.Audio{}, errors.New("empty upload")
	}

	contentType := header.Header.Get("Content-Type")
	if mediatype, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediatype
	}

	return speech.Audio{
		Data:        data,
		Filename:    header.Filename,
		ContentType: contentType,
	}, nil
}

func toSources(results []rag.Result) []types.Source {
	sources := make([]types.Source, 0, len(results))
	for _, res := range results {
		sources = append(sources, types.Source{
			Content:   res.Passage.Text,
			Metadata:  res.Passage.Metadata,
			Score:     res.Score,
			Relevance: res.Relevance,
		})
	}
	return sources
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	errorMsg := message
	if err != nil {
		errorMsg = fmt.Sprintf("%s: %v", message, err)
	}

	if err := json.NewEncoder(w).Encode(types.ErrorResponse{
		Error:   http.StatusText(status),
		Message: errorMsg,
	}); err != nil {
		slog.Error("Error encoding error response", "error", err, "status", status)
	}
}
