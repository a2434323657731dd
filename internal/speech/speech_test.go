package speech

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/aurivox/internal/inference"
)

func TestExtractTranscript(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"top level text", `{"text":"hello world"}`, "hello world"},
		{"first array element", `[{"text":"from array"}]`, "from array"},
		{"top level wins over array shape", `{"text":"top","0":{"text":"nested"}}`, "top"},
		{"empty text falls through", `{"text":"   ","generated_text":"generated"}`, "generated"},
		{"generated text in array", `[{"generated_text":"gen"}]`, "gen"},
		{"missing field", `{"chunks":[]}`, ""},
		{"non string text", `{"text":42}`, ""},
		{"empty array", `[]`, ""},
		{"invalid json", `oops`, ""},
		{"trimmed", `{"text":"  hi  "}`, "hi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractTranscript([]byte(tc.body)); got != tc.want {
				t.Fatalf("ExtractTranscript(%s) = %q, want %q", tc.body, got, tc.want)
			}
		})
	}
}

func TestExtensionFor(t *testing.T) {
	cases := map[string]string{
		"audio/flac":               ".flac",
		"audio/wav":                ".wav",
		"Audio/MPEG":               ".mp3",
		"audio/ogg; codecs=opus":   ".ogg",
		"application/octet-stream": ".bin",
		"":                         ".bin",
	}
	for ct, want := range cases {
		if got := ExtensionFor(ct); got != want {
			t.Errorf("ExtensionFor(%q) = %q, want %q", ct, got, want)
		}
	}
}

func TestHFTranscriber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Content-Type") != "audio/wav" {
			t.Errorf("content-type = %q", r.Header.Get("Content-Type"))
		}
		w.Write([]byte(`[{"text":" hello world "}]`))
	}))
	defer srv.Close()

	c := NewHFTranscriber(inference.NewClient(nil), srv.URL, "tok")
	text, err := c.Transcribe(context.Background(), []byte("RIFF"), "audio/wav")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "hello world" {
		t.Fatalf("text = %q", text)
	}
}

func TestHFTranscriberMissingTextIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	text, err := NewHFTranscriber(inference.NewClient(nil), srv.URL, "").
		Transcribe(context.Background(), []byte("x"), "audio/wav")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "" {
		t.Fatalf("text = %q", text)
	}
}

func TestHFTranscriberServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHFTranscriber(inference.NewClient(nil), srv.URL, "tok").
		Transcribe(context.Background(), []byte("x"), "audio/wav")

	var ie *inference.Error
	if !errors.As(err, &ie) || ie.StatusCode != 500 || ie.Stage != "asr" {
		t.Fatalf("err = %v", err)
	}
}

func TestHFSynthesizer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"inputs":"hello world"}` {
			t.Errorf("body = %s", body)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type = %q", r.Header.Get("Content-Type"))
		}
		w.Header().Set("Content-Type", "audio/wav; charset=binary")
		w.Write([]byte("123456789"))
	}))
	defer srv.Close()

	audio, err := NewHFSynthesizer(inference.NewClient(nil), srv.URL, "tok").
		Synthesize(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if len(audio.Data) != 9 {
		t.Fatalf("len = %d", len(audio.Data))
	}
	if audio.ContentType != "audio/wav" {
		t.Fatalf("content-type = %q", audio.ContentType)
	}
}

func TestHFSynthesizerDefaultsContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write([]byte{0x66, 0x4c})
	}))
	defer srv.Close()

	audio, err := NewHFSynthesizer(inference.NewClient(nil), srv.URL, "").
		Synthesize(context.Background(), "x")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if audio.ContentType != defaultReplyContentType {
		t.Fatalf("content-type = %q", audio.ContentType)
	}
}

func TestOpenAITranscriber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":" привет "}`))
	}))
	defer srv.Close()

	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = srv.URL + "/v1"

	text, err := NewOpenAITranscriberWithConfig(cfg).
		Transcribe(context.Background(), []byte("RIFF"), "audio/wav")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "привет" {
		t.Fatalf("text = %q", text)
	}
}

type stubTranscriber struct{ text string }

func (s stubTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return s.text, nil
}

type stubSynthesizer struct{ audio Audio }

func (s stubSynthesizer) Synthesize(context.Context, string) (Audio, error) {
	return s.audio, nil
}

func TestServiceDelegates(t *testing.T) {
	svc := NewService(stubTranscriber{text: "t"}, stubSynthesizer{audio: Audio{Data: []byte("a")}})

	text, _ := svc.Transcribe(context.Background(), nil, "")
	audio, _ := svc.Synthesize(context.Background(), "t")
	if text != "t" || string(audio.Data) != "a" {
		t.Fatalf("text=%q audio=%q", text, audio.Data)
	}
}
