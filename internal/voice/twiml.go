package voice

import (
	"log/slog"
	"net/http"

	"github.com/twilio/twilio-go/twiml"
)

// Spoken prompts
const (
	msgWelcome       = "Hello! Welcome to the Public Service Navigation Assistant. I can help you with SNAP benefits, housing assistance, healthcare programs, and more. Please speak after the beep."
	msgNoRecording   = "I didn't hear anything. Please call back and try again."
	msgNextQuestion  = "Please ask your next question after the beep."
	msgMenu          = "Press 1 to repeat the information, press 2 to ask another question, or press 3 to speak with a human representative."
	msgNoPrevious    = "I don't have a previous response to repeat."
	msgHandoff       = "I'm transferring you to a human representative. Please hold."
	msgAlternate     = "For immediate assistance, please call 2-1-1 or visit your local public services office."
	msgUnrecognized  = "I didn't understand your selection. Please try again."
	msgNoInput       = "No input received."
	msgFarewell      = "Thank you for calling. Have a great day!"
	msgGoodbye       = "Thank you for calling. Goodbye."
	msgCallError     = "I'm sorry, there was an error processing your call. Please try again."
	msgNoRecordingRx = "No recording received."
	msgDownloadError = "I couldn't access your recording. Please try again."
	msgNotUnderstood = "I couldn't understand what you said. Please speak clearly and try again."
	msgQueryError    = "I'm having trouble processing your request. Please try again."
	msgCallAlternate = "For immediate assistance, please call 2-1-1."
)

const (
	sayVoice    = "alice"
	sayLanguage = "en-US"

	recordMaxLength = "30"
	gatherTimeout   = "10"
)

func say(message string) *twiml.VoiceSay {
	return &twiml.VoiceSay{
		Message:  message,
		Voice:    sayVoice,
		Language: sayLanguage,
	}
}

// record asks for a question and hangs up when nothing was recorded
func (h *Handler) record(prompt string) []twiml.Element {
	return []twiml.Element{
		say(prompt),
		&twiml.VoiceRecord{
			Action:    h.path("/recording"),
			Method:    http.MethodPost,
			MaxLength: recordMaxLength,
			PlayBeep:  "true",
			Trim:      "trim-silence",
		},
		say(msgNoRecording),
		&twiml.VoiceHangup{},
	}
}

// menu offers the digit choices and falls through to the timeout webhook
func (h *Handler) menu(lead ...string) []twiml.Element {
	elements := make([]twiml.Element, 0, len(lead)+2)
	for _, m := range lead {
		elements = append(elements, say(m))
	}

	return append(elements,
		&twiml.VoiceGather{
			Action:        h.path("/digits"),
			Method:        http.MethodPost,
			NumDigits:     "1",
			Timeout:       gatherTimeout,
			InnerElements: []twiml.Element{say(msgMenu)},
		},
		&twiml.VoiceRedirect{
			Url:    h.path("/timeout"),
			Method: http.MethodPost,
		},
	)
}

// hangup speaks the messages and ends the call
func hangup(messages ...string) []twiml.Element {
	elements := make([]twiml.Element, 0, len(messages)+1)
	for _, m := range messages {
		elements = append(elements, say(m))
	}
	return append(elements, &twiml.VoiceHangup{})
}

// apology is the reply when a collaborator fails: the problem, the
// alternate human channel and a goodbye
func apology(message string) []twiml.Element {
	return hangup(message, msgCallAlternate, msgGoodbye)
}

func writeTwiML(w http.ResponseWriter, elements []twiml.Element) {
	doc, err := twiml.Voice(elements)
	if err != nil {
		slog.Error("Error rendering TwiML", "error", err)
		http.Error(w, "failed to render response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	if _, err := w.Write([]byte(doc)); err != nil {
		slog.Error("Error writing TwiML", "error", err)
	}
}
