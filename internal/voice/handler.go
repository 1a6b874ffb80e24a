package voice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/twilio/twilio-go/client"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/session"
	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/types"
)

// Handler serves the telephony webhooks and keeps the per-call state
type Handler struct {
	backend  Backend
	fetcher  RecordingFetcher
	calls    *session.Store[Call]
	basePath string

	validator     *client.RequestValidator
	publicBaseURL string
}

// HandlerOption configures a Handler
type HandlerOption func(*Handler)

// WithSignatureValidation rejects webhooks without a valid X-Twilio-Signature.
// publicBaseURL is the scheme and host the provider calls, since the signed
// URL is the public one and not the one seen behind a proxy.
func WithSignatureValidation(authToken, publicBaseURL string) HandlerOption {
	return func(h *Handler) {
		if authToken == "" || publicBaseURL == "" {
			return
		}
		v := client.NewRequestValidator(authToken)
		h.validator = &v
		h.publicBaseURL = strings.TrimRight(publicBaseURL, "/")
	}
}

// NewHandler creates the webhook handler. basePath is where Routes is
// mounted and prefixes the webhook URLs written into the TwiML.
func NewHandler(backend Backend, fetcher RecordingFetcher, calls *session.Store[Call], basePath string, opts ...HandlerOption) *Handler {
	h := &Handler{
		backend:  backend,
		fetcher:  fetcher,
		calls:    calls,
		basePath: basePath,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// Routes returns the webhook router, to be mounted at the base path
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	if h.validator != nil {
		r.Use(h.verifySignature)
	}

	r.Post("/incoming", h.Incoming)
	r.Post("/recording", h.RecordingComplete)
	r.Post("/digits", h.Digits)
	r.Post("/timeout", h.Timeout)

	return r
}

func (h *Handler) path(suffix string) string {
	if h.basePath == "/" {
		return suffix
	}
	return h.basePath + suffix
}

// Incoming answers a new call with the welcome prompt and starts recording
func (h *Handler) Incoming(w http.ResponseWriter, r *http.Request) {
	sid, ok := callSID(w, r)
	if !ok {
		return
	}

	call := Call{SID: sid, State: Ringing}
	if err := call.advance(Recording); err != nil {
		slog.Error("Error starting call", "call_sid", sid, "error", err)
		writeTwiML(w, hangup(msgCallError))
		return
	}
	h.calls.Put(sid, call)

	slog.Info("Incoming call", "call_sid", sid, "from", r.FormValue("From"))
	writeTwiML(w, h.record(msgWelcome))
}

// RecordingComplete answers the recorded question and offers the menu
func (h *Handler) RecordingComplete(w http.ResponseWriter, r *http.Request) {
	sid, ok := callSID(w, r)
	if !ok {
		return
	}

	recordingURL := r.FormValue("RecordingUrl")
	if recordingURL == "" {
		h.end(sid, Recording)
		writeTwiML(w, hangup(msgNoRecordingRx, msgGoodbye))
		return
	}

	if _, err := h.update(sid, Recording, func(c *Call) error {
		return c.advance(Processing)
	}); err != nil {
		h.reject(w, sid, err)
		return
	}

	ctx := r.Context()
	slog.Info("Processing recording", "call_sid", sid, "duration", r.FormValue("RecordingDuration"))

	audio, err := h.fetcher.Fetch(ctx, recordingURL)
	if err != nil {
		h.fail(w, sid, msgDownloadError, "Error downloading recording", err)
		return
	}

	question, err := h.backend.Transcribe(ctx, audio)
	if err != nil {
		h.fail(w, sid, msgNotUnderstood, "Error transcribing recording", err)
		return
	}
	slog.Info("Caller question", "call_sid", sid, "question", question)

	answer, err := h.backend.Ask(ctx, question)
	if err != nil {
		h.fail(w, sid, msgQueryError, "Error answering question", err)
		return
	}

	if _, err := h.update(sid, Processing, func(c *Call) error {
		c.LastAnswer = answer
		return c.advance(Speaking, AwaitingDigit)
	}); err != nil {
		h.reject(w, sid, err)
		return
	}

	writeTwiML(w, h.menu(answer))
}

// Digits handles the caller's menu choice
func (h *Handler) Digits(w http.ResponseWriter, r *http.Request) {
	sid, ok := callSID(w, r)
	if !ok {
		return
	}

	digit := r.FormValue("Digits")
	slog.Info("Menu selection", "call_sid", sid, "digits", digit)

	switch digit {
	case "":
		h.end(sid, AwaitingDigit)
		writeTwiML(w, hangup(msgNoInput, msgFarewell))

	case "1":
		call, err := h.update(sid, AwaitingDigit, func(c *Call) error {
			return c.advance(Speaking, AwaitingDigit)
		})
		if err != nil {
			h.reject(w, sid, err)
			return
		}
		text := call.LastAnswer
		if text == "" {
			text = msgNoPrevious
		}
		writeTwiML(w, h.menu(text))

	case "2":
		if _, err := h.update(sid, AwaitingDigit, func(c *Call) error {
			return c.advance(Recording)
		}); err != nil {
			h.reject(w, sid, err)
			return
		}
		writeTwiML(w, h.record(msgNextQuestion))

	case "3":
		if _, err := h.update(sid, AwaitingDigit, func(c *Call) error {
			return c.advance(Ended)
		}); err != nil {
			h.reject(w, sid, err)
			return
		}
		writeTwiML(w, hangup(msgHandoff, msgAlternate))

	default:
		if _, err := h.update(sid, AwaitingDigit, func(c *Call) error {
			return c.advance(Speaking, AwaitingDigit)
		}); err != nil {
			h.reject(w, sid, err)
			return
		}
		writeTwiML(w, h.menu(msgUnrecognized))
	}
}

// Timeout ends a call whose menu got no answer
func (h *Handler) Timeout(w http.ResponseWriter, r *http.Request) {
	sid, ok := callSID(w, r)
	if !ok {
		return
	}

	h.end(sid, AwaitingDigit)
	writeTwiML(w, hangup(msgFarewell))
}

// HealthHandler reports the standalone telephony server
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(types.HealthResponse{
		Status: "healthy",
		Services: map[string]any{
			"active_calls":         h.calls.Len(),
			"webhook_path":         h.basePath,
			"signature_validation": h.validator != nil,
		},
	}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// Lookup returns the tracked state of a call
func (h *Handler) Lookup(sid string) (Call, bool) {
	return h.calls.Get(sid)
}

// update applies fn to the call under the store lock. A call the store does
// not know, because it expired or another replica answered it, starts in the
// state the webhook expects.
func (h *Handler) update(sid string, expected State, fn func(c *Call) error) (Call, error) {
	return h.calls.Update(sid, func(c Call, ok bool) (Call, bool, error) {
		if !ok {
			c = Call{SID: sid, State: expected}
		}
		err := fn(&c)
		return c, true, err
	})
}

func (h *Handler) end(sid string, expected State) {
	if _, err := h.update(sid, expected, func(c *Call) error {
		if c.State == Ended {
			return nil
		}
		return c.advance(Ended)
	}); err != nil {
		slog.Warn("Error ending call", "call_sid", sid, "error", err)
	}
}

// fail ends the call with a spoken apology after a collaborator error
func (h *Handler) fail(w http.ResponseWriter, sid, message, logMsg string, err error) {
	slog.Error(logMsg, "call_sid", sid, "error", err)
	h.end(sid, Processing)
	writeTwiML(w, apology(message))
}

func (h *Handler) reject(w http.ResponseWriter, sid string, err error) {
	if errors.Is(err, ErrInvalidTransition) {
		slog.Warn("Webhook does not match call state", "call_sid", sid, "error", err)
	} else {
		slog.Error("Error updating call", "call_sid", sid, "error", err)
	}
	writeTwiML(w, hangup(msgCallError))
}

// callSID parses the webhook form and returns the call SID. Without one the
// caller still hears an apology.
func callSID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseForm(); err != nil {
		slog.Error("Error parsing webhook form", "error", err)
		http.Error(w, "invalid form", http.StatusBadRequest)
		return "", false
	}

	sid := r.FormValue("CallSid")
	if sid == "" {
		slog.Warn("Webhook without CallSid", "path", r.URL.Path)
		writeTwiML(w, hangup(msgCallError))
		return "", false
	}
	return sid, true
}

func (h *Handler) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		params := make(map[string]string, len(r.PostForm))
		for key, values := range r.PostForm {
			if len(values) > 0 {
				params[key] = values[0]
			}
		}

		url := h.publicBaseURL + r.URL.RequestURI()
		if !h.validator.Validate(url, params, r.Header.Get("X-Twilio-Signature")) {
			slog.Warn("Rejected webhook with invalid signature", "path", r.URL.Path)
			http.Error(w, "invalid signature", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
