package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/assistant"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/backend"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/responder"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/speech"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/types"
)

// SpeechToText is the part of the speech adapter the in-process backend uses
type SpeechToText interface {
	TranscribeAudio(ctx context.Context, audio speech.Audio) (string, error)
}

// QuestionAnswerer is the part of the assistant service the in-process
// backend uses
type QuestionAnswerer interface {
	Ask(ctx context.Context, query string, conv responder.Conversation) assistant.AnswerResult
}

// InProcess answers calls with the services of the API server itself
type InProcess struct {
	speech    SpeechToText
	assistant QuestionAnswerer
}

func NewInProcess(stt SpeechToText, qa QuestionAnswerer) *InProcess {
	return &InProcess{
		speech:    stt,
		assistant: qa,
	}
}

func (b *InProcess) Transcribe(ctx context.Context, audio speech.Audio) (string, error) {
	return b.speech.TranscribeAudio(ctx, audio)
}

func (b *InProcess) Ask(ctx context.Context, query string) (string, error) {
	return b.assistant.Ask(ctx, query, responder.Conversation{}).Text, nil
}

// APIClient answers calls through the HTTP API of a separate server
type APIClient struct {
	baseURL string
	client  *http.Client
}

func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Transcribe uploads the recording to /voice/transcribe. The API answers
// unusable audio with an apology instead of an error, which is turned back
// into an error here.
func (c *APIClient) Transcribe(ctx context.Context, audio speech.Audio) (string, error) {
	const op = "voice.APIClient.Transcribe"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="audio_file"; filename=%q`, audio.Filename))
	header.Set("Content-Type", audio.ContentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", backend.Wrap(op, fmt.Errorf("failed to create form file: %w", err))
	}
	if _, err := part.Write(audio.Data); err != nil {
		return "", backend.Wrap(op, fmt.Errorf("failed to write form file: %w", err))
	}
	if err := mw.Close(); err != nil {
		return "", backend.Wrap(op, fmt.Errorf("failed to close form: %w", err))
	}

	var res types.TranscriptionResponse
	if err := c.post(ctx, op, "/voice/transcribe", mw.FormDataContentType(), &body, &res); err != nil {
		return "", err
	}

	text := strings.TrimSpace(res.Transcription)
	if text == "" || text == speech.MsgNotUnderstood || text == speech.MsgAudioError {
		return "", backend.New(op, backend.InvalidInput, speech.ErrEmptyTranscript)
	}
	return text, nil
}

// Ask posts the question to /query
func (c *APIClient) Ask(ctx context.Context, query string) (string, error) {
	const op = "voice.APIClient.Ask"

	payload, err := json.Marshal(types.QueryRequest{Query: query})
	if err != nil {
		return "", backend.Wrap(op, fmt.Errorf("failed to encode query: %w", err))
	}

	var res types.QueryResponse
	if err := c.post(ctx, op, "/query", "application/json", bytes.NewReader(payload), &res); err != nil {
		return "", err
	}
	if strings.TrimSpace(res.Response) == "" {
		return "", backend.New(op, backend.Unknown, errors.New("empty response"))
	}
	return res.Response, nil
}

func (c *APIClient) post(ctx context.Context, op, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return backend.Wrap(op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return backend.Wrap(op, fmt.Errorf("failed to call %s: %w", path, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return backend.StatusError(op, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backend.Wrap(op, fmt.Errorf("failed to decode %s response: %w", path, err))
	}
	return nil
}
