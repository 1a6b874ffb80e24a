package responder

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/rag"
)

const (
	// DefaultSystemPrompt is sent as the system message unless overridden
	DefaultSystemPrompt = "You are a helpful public service navigation assistant."

	promptPassages   = 3
	passageRuneLimit = 500
)

// Conversation is the optional user context of a query: prior turns, extra
// details about the user, or both
type Conversation struct {
	Turns   []map[string]any
	Details map[string]any
}

// ParseUserContext accepts either a JSON array of turns or a JSON object
func ParseUserContext(raw json.RawMessage) (Conversation, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Conversation{}, nil
	}

	var conv Conversation
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &conv.Turns); err != nil {
			return Conversation{}, fmt.Errorf("failed to parse conversation turns: %w", err)
		}
	case '{':
		if err := json.Unmarshal(raw, &conv.Details); err != nil {
			return Conversation{}, fmt.Errorf("failed to parse user context: %w", err)
		}
	default:
		return Conversation{}, errors.New("user_context must be an array or an object")
	}
	return conv, nil
}

func (c Conversation) Empty() bool {
	return len(c.Turns) == 0 && len(c.Details) == 0
}

func (c Conversation) serialize() string {
	var v any
	switch {
	case len(c.Turns) > 0 && len(c.Details) > 0:
		v = map[string]any{"conversation": c.Turns, "details": c.Details}
	case len(c.Turns) > 0:
		v = c.Turns
	default:
		v = c.Details
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// BuildPrompt assembles the user message: user context, the top passages
// truncated to a fixed length, the question and the answer instruction
func BuildPrompt(query string, results []rag.Result, conv Conversation) string {
	var b strings.Builder

	b.WriteString("You are a helpful public service navigation assistant. Your role is to help users understand and access government benefits and services like SNAP, housing assistance, and healthcare programs.\n\n")

	if !conv.Empty() {
		if data := conv.serialize(); data != "" {
			fmt.Fprintf(&b, "User context: %s\n\n", data)
		}
	}

	if len(results) > 0 {
		b.WriteString("Relevant information:\n\n")
		for i, r := range results[:min(promptPassages, len(results))] {
			fmt.Fprintf(&b, "%d. %s...\n\n", i+1, truncateRunes(r.Passage.Text, passageRuneLimit))
		}
	}

	fmt.Fprintf(&b, "\nUser Question: %s\n\n", query)
	b.WriteString("Please provide a clear, helpful, and accurate response based on the information provided. ")
	b.WriteString("If the information is not sufficient to answer the question completely, acknowledge what you can help with and suggest where they might find more information.\n\n")
	b.WriteString("Response:")

	return b.String()
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// LoadSystemPrompt reads system_prompt.txt from dir, falling back to the
// default when the file does not exist
func LoadSystemPrompt(dir string) (string, error) {
	if dir == "" {
		return DefaultSystemPrompt, nil
	}

	data, err := os.ReadFile(filepath.Join(dir, "system_prompt.txt"))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultSystemPrompt, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt: %w", err)
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return DefaultSystemPrompt, nil
	}
	return prompt, nil
}
