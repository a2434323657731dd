package speech

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAITranscriber — Whisper через OpenAI, включается ASR_PROVIDER=openai.
type OpenAITranscriber struct {
	client *openai.Client
}

func NewOpenAITranscriber(apiKey string) *OpenAITranscriber {
	return &OpenAITranscriber{
		client: openai.NewClient(apiKey),
	}
}

func NewOpenAITranscriberWithConfig(cfg openai.ClientConfig) *OpenAITranscriber {
	return &OpenAITranscriber{
		client: openai.NewClientWithConfig(cfg),
	}
}

func (c *OpenAITranscriber) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: "voice" + ExtensionFor(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("asr openai: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
