package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/yagnik-10/AI-agent-for-Public-Service-Navigation/internal/backend"
)

// GenerateAnswer sends the system instruction and the assembled prompt to the
// chat model and returns the first choice
func (c *Client) GenerateAnswer(ctx context.Context, systemPrompt, prompt string) (string, error) {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return "", backend.Wrap("llm.GenerateAnswer", err)
	}

	// Create chat completion using OpenAI Go client
	systemMsg := openai.SystemMessage(systemPrompt)
	userMsg := openai.UserMessage(prompt)
	res, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			systemMsg,
			userMsg,
		},
		MaxTokens:   param.Opt[int64]{Value: 500},
		Temperature: param.Opt[float64]{Value: 0.7},
	})
	if err != nil {
		return "", backend.Wrap("llm.GenerateAnswer", fmt.Errorf("failed to generate completion: %w", err))
	}

	if len(res.Choices) == 0 {
		return "", backend.New("llm.GenerateAnswer", backend.Unknown, errors.New("no choices in response"))
	}

	return res.Choices[0].Message.Content, nil
}

// GenerateEmbedding generates an embedding for the given text
func (c *Client) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, backend.Wrap("llm.GenerateEmbedding", err)
	}

	input := openai.EmbeddingNewParamsInputUnion{
		OfString: param.Opt[string]{Value: text},
	}
	res, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.embedModel),
		Input: input,
	})
	if err != nil {
		return nil, backend.Wrap("llm.GenerateEmbedding", fmt.Errorf("failed to generate embedding: %w", err))
	}

	if len(res.Data) == 0 {
		return nil, backend.New("llm.GenerateEmbedding", backend.Unknown, errors.New("no embedding data in response"))
	}

	// Convert []float64 to []float32 for the vector index
	embedding := make([]float32, len(res.Data[0].Embedding))
	for i, v := range res.Data[0].Embedding {
		embedding[i] = float32(v)
	}

	return embedding, nil
}

// Transcribe converts recorded audio to English text
func (c *Client) Transcribe(ctx context.Context, filename, contentType string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", backend.New("llm.Transcribe", backend.InvalidInput, errors.New("empty audio"))
	}

	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return "", backend.Wrap("llm.Transcribe", err)
	}

	res, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:     openai.File(bytes.NewReader(audio), filename, contentType),
		Model:    openai.AudioModel(c.whisperModel),
		Language: param.Opt[string]{Value: "en"},
	})
	if err != nil {
		return "", backend.Wrap("llm.Transcribe", fmt.Errorf("failed to transcribe audio: %w", err))
	}

	return res.Text, nil
}

// Synthesize renders text as MP3 audio with the given engine voice
func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	ctx, cancel, err := c.begin(ctx)
	defer cancel()
	if err != nil {
		return nil, backend.Wrap("llm.Synthesize", err)
	}

	res, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(c.ttsModel),
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, backend.Wrap("llm.Synthesize", fmt.Errorf("failed to synthesize speech: %w", err))
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, backend.Wrap("llm.Synthesize", fmt.Errorf("failed to read speech: %w", err))
	}

	if len(data) == 0 {
		return nil, backend.New("llm.Synthesize", backend.Unknown, errors.New("empty audio in response"))
	}

	return data, nil
}
