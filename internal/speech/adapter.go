package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/backend"
)

// User-facing texts returned in place of a transcription or spoken on errors
const (
	MsgNotUnderstood  = "I'm sorry, I couldn't understand the audio. Please try speaking more clearly."
	MsgAudioError     = "I'm sorry, there was an error processing your audio."
	MsgSynthesisError = "I'm sorry, there was an error processing your request."
)

const (
	MinSpeed     = 0.5
	MaxSpeed     = 2.0
	DefaultSpeed = 1.0

	// wordsPerSecond is an average speaking rate at speed 1.0
	wordsPerSecond = 2.5
)

var (
	// ErrNoTranscriber means no transcription backend could be used
	ErrNoTranscriber = errors.New("no transcription service available")
	// ErrEmptyTranscript means the audio held no recognizable speech
	ErrEmptyTranscript = errors.New("no speech recognized")
)

// Voice is the caller-facing voice choice
type Voice string

const (
	Male    Voice = "male"
	Female  Voice = "female"
	Neutral Voice = "neutral"
)

// ParseVoice validates a voice name; empty means neutral
func ParseVoice(s string) (Voice, error) {
	switch v := Voice(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return Neutral, nil
	case Male, Female, Neutral:
		return v, nil
	default:
		return "", fmt.Errorf("voice must be one of male, female, neutral, got %q", s)
	}
}

// EngineVoice maps the voice to a speech engine voice
func (v Voice) EngineVoice() string {
	switch v {
	case Male:
		return "onyx"
	case Female:
		return "nova"
	default:
		return "alloy"
	}
}

// ValidateSpeed checks the speed multiplier range
func ValidateSpeed(speed float64) error {
	if speed < MinSpeed || speed > MaxSpeed {
		return fmt.Errorf("speed must be between %.1f and %.1f, got %g", MinSpeed, MaxSpeed, speed)
	}
	return nil
}

// EstimateDuration guesses the spoken length of text in seconds
func EstimateDuration(text string, speed float64) float64 {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return float64(len(strings.Fields(text))) / (wordsPerSecond * speed)
}

// Audio is an uploaded or downloaded recording
type Audio struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Health is the speech status reported by GET /health
type Health struct {
	Initialized             bool   `json:"initialized"`
	RemoteTranscription     bool   `json:"openai_available"`
	LocalTranscription      bool   `json:"whisper_model_loaded"`
	SynthesisAvailable      bool   `json:"synthesis_available"`
	DefaultLanguage         string `json:"default_language"`
	SynthesisTestSuccessful bool   `json:"synthesis_test_successful"`
	SynthesisTestSize       int    `json:"synthesis_test_size"`
	SynthesisTestError      string `json:"synthesis_test_error,omitempty"`
}

// Adapter chains the transcription backends and wraps speech synthesis
type Adapter struct {
	remote Transcriber
	local  Transcriber
	synth  Synthesizer
}

// NewAdapter creates an adapter; any backend may be nil
func NewAdapter(remote, local Transcriber, synth Synthesizer) *Adapter {
	return &Adapter{
		remote: remote,
		local:  local,
		synth:  synth,
	}
}

// Transcribe returns the spoken text, or a user-facing apology when the
// audio could not be transcribed
func (a *Adapter) Transcribe(ctx context.Context, audio Audio) string {
	text, err := a.TranscribeAudio(ctx, audio)
	switch {
	case errors.Is(err, ErrNoTranscriber), errors.Is(err, ErrEmptyTranscript):
		return MsgNotUnderstood
	case err != nil:
		slog.Error("Error transcribing audio", "error", err)
		return MsgAudioError
	}
	return text
}

// TranscribeAudio tries the remote service first, then the local one
func (a *Adapter) TranscribeAudio(ctx context.Context, audio Audio) (string, error) {
	const op = "speech.Transcribe"

	if len(audio.Data) == 0 {
		return "", backend.New(op, backend.InvalidInput, errors.New("empty audio"))
	}
	if audio.Filename == "" {
		audio.Filename = "audio.wav"
	}
	if audio.ContentType == "" {
		audio.ContentType = "audio/wav"
	}

	if a.remote != nil {
		text, err := a.remote.Transcribe(ctx, audio.Filename, audio.ContentType, audio.Data)
		if err == nil {
			return checkTranscript(op, text)
		}
		slog.Warn("Remote transcription failed", "error", err)
	}

	if a.local != nil {
		text, err := a.local.Transcribe(ctx, audio.Filename, audio.ContentType, audio.Data)
		if err != nil {
			return "", backend.Wrap(op, err)
		}
		return checkTranscript(op, text)
	}

	slog.Warn("No transcription service available")
	return "", backend.New(op, backend.Unavailable, ErrNoTranscriber)
}

func checkTranscript(op, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", backend.New(op, backend.InvalidInput, ErrEmptyTranscript)
	}
	return text, nil
}

// Synthesize renders text as MP3. The text goes through the SSML markup step
// and is flattened back to plain text for the engine, which takes no markup;
// speed only affects that markup. When the engine fails the apology text is
// synthesized instead, and only if that fails too an error is returned.
func (a *Adapter) Synthesize(ctx context.Context, text string, voice Voice, speed float64) ([]byte, error) {
	const op = "speech.Synthesize"

	if err := ValidateSpeed(speed); err != nil {
		return nil, backend.New(op, backend.InvalidInput, err)
	}
	if _, err := ParseVoice(string(voice)); err != nil {
		return nil, backend.New(op, backend.InvalidInput, err)
	}
	if a.synth == nil {
		return nil, backend.New(op, backend.Unavailable, backend.ErrNotConfigured)
	}

	engineVoice := voice.EngineVoice()
	audio, err := a.synth.Synthesize(ctx, PlainText(Markup(text, speed)), engineVoice)
	if err == nil {
		return audio, nil
	}
	slog.Error("Error synthesizing speech", "error", err)

	audio, err = a.synth.Synthesize(ctx, MsgSynthesisError, engineVoice)
	if err != nil {
		return nil, backend.Wrap(op, err)
	}
	return audio, nil
}

// Health reports the configured backends and runs a short synthesis
func (a *Adapter) Health(ctx context.Context) Health {
	h := Health{
		Initialized:         true,
		RemoteTranscription: a.remote != nil,
		LocalTranscription:  a.local != nil,
		SynthesisAvailable:  a.synth != nil,
		DefaultLanguage:     "en",
	}
	if a.synth == nil {
		return h
	}

	audio, err := a.Synthesize(ctx, "Test", Neutral, DefaultSpeed)
	if err != nil {
		h.SynthesisTestError = err.Error()
		return h
	}
	h.SynthesisTestSuccessful = len(audio) > 0
	h.SynthesisTestSize = len(audio)
	return h
}
