package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/assistant"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/backend"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/rag"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/responder"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/speech"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/types"
)

type mocks struct {
	assistant *MockAssistant
	knowledge *MockKnowledgeBase
	speech    *MockSpeech
	model     *MockLanguageModel
}

func newTestHandler(t *testing.T, setup func(m mocks)) *Handler {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		assistant: NewMockAssistant(ctrl),
		knowledge: NewMockKnowledgeBase(ctrl),
		speech:    NewMockSpeech(ctrl),
		model:     NewMockLanguageModel(ctrl),
	}
	if setup != nil {
		setup(m)
	}
	return NewHandlers(m.assistant, m.knowledge, m.speech, m.model)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()

	if str, ok := v.(string); ok {
		return bytes.NewBufferString(str)
	}
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}
	return bytes.NewBuffer(body)
}

func snapResult() assistant.AnswerResult {
	return assistant.AnswerResult{
		Text: "SNAP provides food assistance.",
		Sources: []rag.Result{
			{
				Passage:   rag.Passage{Text: "SNAP (Supplemental Nutrition Assistance Program)", Metadata: map[string]string{"source": "snap_benefits.txt"}},
				Score:     0.25,
				Relevance: 0.75,
			},
		},
		Confidence: 0.75,
	}
}

func TestHandler_QueryHandler(t *testing.T) {
	tests := []struct {
		name         string
		requestBody  interface{}
		setupMocks   func(m mocks)
		wantStatus   int
		wantContains string
	}{
		{
			name:        "successful query",
			requestBody: map[string]any{"query": "What is SNAP?"},
			setupMocks: func(m mocks) {
				m.assistant.EXPECT().
					Ask(gomock.Any(), "What is SNAP?", responder.Conversation{}).
					Return(snapResult())
			},
			wantStatus:   http.StatusOK,
			wantContains: "SNAP provides food assistance.",
		},
		{
			name:        "user context object",
			requestBody: `{"query":"Am I eligible?","user_context":{"state":"CA"}}`,
			setupMocks: func(m mocks) {
				m.assistant.EXPECT().
					Ask(gomock.Any(), "Am I eligible?", responder.Conversation{Details: map[string]any{"state": "CA"}}).
					Return(assistant.AnswerResult{Text: "Maybe."})
			},
			wantStatus:   http.StatusOK,
			wantContains: `"sources":[]`,
		},
		{
			name:        "invalid JSON",
			requestBody: "invalid json",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "empty query",
			requestBody: map[string]any{"query": ""},
			wantStatus:  http.StatusUnprocessableEntity,
		},
		{
			name:        "blank query",
			requestBody: map[string]any{"query": "   "},
			wantStatus:  http.StatusUnprocessableEntity,
		},
		{
			name:        "invalid user context",
			requestBody: `{"query":"housing","user_context":5}`,
			wantStatus:  http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, tt.setupMocks)

			req := httptest.NewRequest(http.MethodPost, "/query", jsonBody(t, tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.QueryHandler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("QueryHandler() status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantContains != "" {
				if !bytes.Contains(w.Body.Bytes(), []byte(tt.wantContains)) {
					t.Errorf("QueryHandler() body = %s, want containing %q", w.Body.String(), tt.wantContains)
				}
			}
		})
	}
}

func TestHandler_QueryHandler_Sources(t *testing.T) {
	handler := newTestHandler(t, func(m mocks) {
		m.assistant.EXPECT().Ask(gomock.Any(), gomock.Any(), gomock.Any()).Return(snapResult())
	})

	req := httptest.NewRequest(http.MethodPost, "/query", jsonBody(t, map[string]any{"query": "snap"}))
	w := httptest.NewRecorder()

	handler.QueryHandler(w, req)

	var response types.QueryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("QueryHandler() invalid JSON: %v", err)
	}
	if len(response.Sources) != 1 {
		t.Fatalf("QueryHandler() sources = %d, want 1", len(response.Sources))
	}
	src := response.Sources[0]
	if src.Metadata["source"] != "snap_benefits.txt" || src.Score != 0.25 || src.Relevance != 0.75 {
		t.Errorf("QueryHandler() source = %+v", src)
	}
	if response.Confidence != 0.75 {
		t.Errorf("QueryHandler() confidence = %v, want 0.75", response.Confidence)
	}
}

func TestHandler_IngestHandler(t *testing.T) {
	tests := []struct {
		name        string
		requestBody interface{}
		setupMocks  func(m mocks)
		wantStatus  int
	}{
		{
			name: "successful ingestion",
			requestBody: types.IngestRequest{
				Text:     "This is a test document",
				ID:       "doc1",
				Metadata: map[string]string{"category": "food"},
			},
			setupMocks: func(m mocks) {
				m.knowledge.EXPECT().
					Ingest(gomock.Any(), rag.Document{ID: "doc1", Text: "This is a test document", Metadata: map[string]string{"category": "food"}}).
					Return(rag.IngestResult{DocumentID: "doc1", Chunks: 1, Indexed: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:        "invalid JSON",
			requestBody: "invalid json",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name: "empty text",
			requestBody: types.IngestRequest{
				Text: "",
				ID:   "doc1",
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "ingestion fails",
			requestBody: types.IngestRequest{
				Text: "test document",
				ID:   "doc1",
			},
			setupMocks: func(m mocks) {
				m.knowledge.EXPECT().
					Ingest(gomock.Any(), rag.Document{ID: "doc1", Text: "test document"}).
					Return(rag.IngestResult{}, errors.New("ingestion error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "ingestion without ID",
			requestBody: types.IngestRequest{
				Text: "test document",
			},
			setupMocks: func(m mocks) {
				m.knowledge.EXPECT().
					Ingest(gomock.Any(), rag.Document{Text: "test document"}).
					Return(rag.IngestResult{DocumentID: "generated", Chunks: 1}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, tt.setupMocks)

			req := httptest.NewRequest(http.MethodPost, "/documents", jsonBody(t, tt.requestBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.IngestHandler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("IngestHandler() status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var response types.IngestResponse
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Errorf("IngestHandler() invalid JSON response: %v", err)
				}
				if response.Status != "success" {
					t.Errorf("IngestHandler() status = %q, want %q", response.Status, "success")
				}
				if response.DocumentID == "" || response.Chunks != 1 {
					t.Errorf("IngestHandler() response = %+v", response)
				}
			}
		})
	}
}

func multipartBody(t *testing.T, field string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, "question.wav")
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		part.Write(data)
	} else {
		mw.WriteField("note", "no file")
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return &body, mw.FormDataContentType()
}

func TestHandler_TranscribeHandler(t *testing.T) {
	tests := []struct {
		name         string
		field        string
		data         []byte
		contentType  string
		setupMocks   func(m mocks)
		wantStatus   int
		wantContains string
	}{
		{
			name:  "audio_file field",
			field: "audio_file",
			data:  []byte("RIFF"),
			setupMocks: func(m mocks) {
				m.speech.EXPECT().
					Transcribe(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ interface{}, audio speech.Audio) string {
						if string(audio.Data) != "RIFF" || audio.Filename != "question.wav" {
							t.Errorf("Transcribe() audio = %+v", audio)
						}
						return "what is snap"
					})
			},
			wantStatus:   http.StatusOK,
			wantContains: "what is snap",
		},
		{
			name:  "file field",
			field: "file",
			data:  []byte("RIFF"),
			setupMocks: func(m mocks) {
				m.speech.EXPECT().Transcribe(gomock.Any(), gomock.Any()).Return(speech.MsgNotUnderstood)
			},
			wantStatus:   http.StatusOK,
			wantContains: "couldn't understand",
		},
		{
			name:       "missing file",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "empty file",
			field:      "audio_file",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:        "not multipart",
			contentType: "application/json",
			wantStatus:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, tt.setupMocks)

			body, contentType := multipartBody(t, tt.field, tt.data)
			if tt.contentType != "" {
				contentType = tt.contentType
			}
			req := httptest.NewRequest(http.MethodPost, "/voice/transcribe", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			handler.TranscribeHandler(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("TranscribeHandler() status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantContains != "" && !strings.Contains(w.Body.String(), tt.wantContains) {
				t.Errorf("TranscribeHandler() body = %s, want containing %q", w.Body.String(), tt.wantContains)
			}
		})
	}
}

func TestHandler_SynthesizeHandler(t *testing.T) {
	tests := []struct {
		name        string
		requestBody interface{}
		setupMocks  func(m mocks)
		wantStatus  int
		wantWords   int
		wantSeconds float64
	}{
		{
			name:        "defaults",
			requestBody: `{"text":"Apply for SNAP online today, friend"}`,
			setupMocks: func(m mocks) {
				m.speech.EXPECT().
					Synthesize(gomock.Any(), "Apply for SNAP online today, friend", speech.Neutral, 1.0).
					Return([]byte("ID3"), nil)
			},
			wantStatus:  http.StatusOK,
			wantWords:   6,
			wantSeconds: 2.4,
		},
		{
			name:        "voice and speed",
			requestBody: `{"text":"Hello there friend","voice":"Female","speed":1.5}`,
			setupMocks: func(m mocks) {
				m.speech.EXPECT().
					Synthesize(gomock.Any(), "Hello there friend", speech.Female, 1.5).
					Return([]byte("ID3"), nil)
			},
			wantStatus:  http.StatusOK,
			wantWords:   3,
			wantSeconds: 0.8,
		},
		{
			name:        "invalid voice",
			requestBody: `{"text":"hi","voice":"robot"}`,
			wantStatus:  http.StatusUnprocessableEntity,
		},
		{
			name:        "speed too high",
			requestBody: `{"text":"hi","speed":3}`,
			wantStatus:  http.StatusUnprocessableEntity,
		},
		{
			name:        "explicit zero speed",
			requestBody: `{"text":"hi","speed":0}`,
			wantStatus:  http.StatusUnprocessableEntity,
		},
		{
			name:        "blank text",
			requestBody: `{"text":" "}`,
			wantStatus:  http.StatusUnprocessableEntity,
		},
		{
			name:        "invalid JSON",
			requestBody: "{",
			wantStatus:  http.StatusBadRequest,
		},
		{
			name:        "engine unavailable",
			requestBody: `{"text":"hi"}`,
			setupMocks: func(m mocks) {
				m.speech.EXPECT().
					Synthesize(gomock.Any(), "hi", speech.Neutral, 1.0).
					Return(nil, backend.New("speech.Synthesize", backend.Unavailable, backend.ErrNotConfigured))
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t, tt.setupMocks)

			req := httptest.NewRequest(http.MethodPost, "/voice/synthesize", jsonBody(t, tt.requestBody))
			w := httptest.NewRecorder()

			handler.SynthesizeHandler(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("SynthesizeHandler() status = %d, want %d (%s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var response types.SynthesisResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("SynthesizeHandler() invalid JSON: %v", err)
			}
			if string(response.AudioData) != "ID3" || response.Format != "mp3" {
				t.Errorf("SynthesizeHandler() audio = %q format = %q", response.AudioData, response.Format)
			}
			if response.WordCount != tt.wantWords {
				t.Errorf("SynthesizeHandler() word_count = %d, want %d", response.WordCount, tt.wantWords)
			}
			if diff := response.Duration - tt.wantSeconds; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("SynthesizeHandler() duration = %v, want %v", response.Duration, tt.wantSeconds)
			}
		})
	}
}

func TestHandler_ProcessHandler(t *testing.T) {
	handler := newTestHandler(t, func(m mocks) {
		gomock.InOrder(
			m.assistant.EXPECT().
				Ask(gomock.Any(), "What is SNAP?", responder.Conversation{Turns: []map[string]any{{"role": "user"}}}).
				Return(snapResult()),
			m.speech.EXPECT().
				Synthesize(gomock.Any(), "SNAP provides food assistance.", speech.Male, 1.0).
				Return([]byte("ID3"), nil),
		)
	})

	body := `{"text":"What is SNAP?","voice":"male","user_context":[{"role":"user"}]}`
	req := httptest.NewRequest(http.MethodPost, "/voice/process", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.ProcessHandler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("ProcessHandler() status = %d, want %d (%s)", w.Code, http.StatusOK, w.Body.String())
	}

	var response types.ProcessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("ProcessHandler() invalid JSON: %v", err)
	}
	if response.TextResponse != "SNAP provides food assistance." {
		t.Errorf("ProcessHandler() text_response = %q", response.TextResponse)
	}
	if string(response.AudioData) != "ID3" || len(response.Sources) != 1 || response.Confidence != 0.75 {
		t.Errorf("ProcessHandler() response = %+v", response)
	}
}

func TestHandler_HealthHandler(t *testing.T) {
	handler := newTestHandler(t, func(m mocks) {
		m.knowledge.EXPECT().Health(gomock.Any()).Return(rag.Health{Initialized: true, SearchMode: "lexical", DocumentCount: 4})
		m.model.EXPECT().Health(gomock.Any()).Return(responder.Health{Initialized: true, Provider: "canned"})
		m.speech.EXPECT().Health(gomock.Any()).Return(speech.Health{Initialized: true, DefaultLanguage: "en"})
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.HealthHandler(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("HealthHandler() status = %d, want %d", w.Code, http.StatusOK)
	}

	var response struct {
		Status   string                     `json:"status"`
		Services map[string]json.RawMessage `json:"services"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("HealthHandler() invalid JSON: %v", err)
	}

	if response.Status != "healthy" {
		t.Errorf("HealthHandler() status = %q, want %q", response.Status, "healthy")
	}
	for _, name := range []string{"rag_service", "llm_service", "speech_service"} {
		if _, ok := response.Services[name]; !ok {
			t.Errorf("HealthHandler() missing service %q", name)
		}
	}
	if !strings.Contains(string(response.Services["rag_service"]), `"search_mode":"lexical"`) {
		t.Errorf("HealthHandler() rag_service = %s", response.Services["rag_service"])
	}
}

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		message    string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "error with message",
			status:     http.StatusBadRequest,
			message:    "Invalid request",
			err:        errors.New("validation failed"),
			wantStatus: http.StatusBadRequest,
			wantError:  "Bad Request",
		},
		{
			name:       "error without message",
			status:     http.StatusInternalServerError,
			message:    "Server error",
			err:        nil,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			errorResponse(w, tt.status, tt.message, tt.err)

			if w.Code != tt.wantStatus {
				t.Errorf("errorResponse() status = %d, want %d", w.Code, tt.wantStatus)
			}

			var response types.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("errorResponse() invalid JSON: %v", err)
			}

			if response.Error != tt.wantError {
				t.Errorf("errorResponse() Error = %q, want %q", response.Error, tt.wantError)
			}

			if tt.message != "" {
				if !strings.Contains(response.Message, tt.message) {
					t.Errorf("errorResponse() Message = %q, want containing %q", response.Message, tt.message)
				}
			}
		})
	}
}

func TestNewRouter(t *testing.T) {
	handler := newTestHandler(t, nil)
	r := NewRouter(handler, RouterOptions{})

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{name: "root", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "empty query", method: http.MethodPost, path: "/query", body: `{"query":""}`, wantStatus: http.StatusUnprocessableEntity},
		{name: "unknown route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodGet, path: "/query", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var root types.RootResponse
	if err := json.Unmarshal(w.Body.Bytes(), &root); err != nil {
		t.Fatalf("GET / invalid JSON: %v", err)
	}
	if root.Status != "running" || root.Version != Version {
		t.Errorf("GET / = %+v", root)
	}
}

func TestNewRouter_Panic(t *testing.T) {
	r := NewRouter(newTestHandler(t, nil), RouterOptions{})
	r.Get("/panic", func(w http.ResponseWriter, r *http.Request) {
		panic("nil map write")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp types.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", w.Body.String(), err)
	}
	if resp.Error != "Internal Server Error" || resp.Message != "Internal server error" {
		t.Errorf("error body = %+v", resp)
	}
}
