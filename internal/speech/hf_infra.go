package speech

import (
	"context"
	"strings"

	"github.com/Vovarama1992/aurivox/internal/inference"
)

const (
	DefaultASRURL = "https://api-inference.huggingface.co/models/openai/whisper-small"
	DefaultTTSURL = "https://api-inference.huggingface.co/models/facebook/mms-tts-eng"

	defaultReplyContentType = "audio/flac"
)

var (
	_ Transcriber = (*HFTranscriber)(nil)
	_ Synthesizer = (*HFSynthesizer)(nil)
	_ Transcriber = (*OpenAITranscriber)(nil)
)

// HFTranscriber — Whisper через Hugging Face Inference API.
type HFTranscriber struct {
	caller inference.Caller
	url    string
	token  string
}

func NewHFTranscriber(caller inference.Caller, url, token string) *HFTranscriber {
	if url == "" {
		url = DefaultASRURL
	}
	return &HFTranscriber{caller: caller, url: url, token: token}
}

func (c *HFTranscriber) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	resp, err := c.caller.Call(ctx, inference.Request{
		Stage:   "asr",
		URL:     c.url,
		Payload: inference.Binary{Data: audio, ContentType: contentType},
		Headers: inference.BearerHeaders(c.token),
		Expect:  inference.ExpectJSON,
	})
	if err != nil {
		return "", err
	}

	return ExtractTranscript(resp.Body), nil
}

// HFSynthesizer — TTS через Hugging Face Inference API.
type HFSynthesizer struct {
	caller inference.Caller
	url    string
	token  string
}

func NewHFSynthesizer(caller inference.Caller, url, token string) *HFSynthesizer {
	if url == "" {
		url = DefaultTTSURL
	}
	return &HFSynthesizer{caller: caller, url: url, token: token}
}

func (c *HFSynthesizer) Synthesize(ctx context.Context, text string) (Audio, error) {
	resp, err := c.caller.Call(ctx, inference.Request{
		Stage:   "tts",
		URL:     c.url,
		Payload: inference.JSON{Value: ttsRequest{Inputs: text}},
		Headers: inference.BearerHeaders(c.token),
		Expect:  inference.ExpectBinary,
	})
	if err != nil {
		return Audio{}, err
	}

	ct := resp.ContentType
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(ct)
	if !strings.HasPrefix(ct, "audio/") {
		ct = defaultReplyContentType
	}

	return Audio{Data: resp.Body, ContentType: ct}, nil
}

type ttsRequest struct {
	Inputs string `json:"inputs"`
}
