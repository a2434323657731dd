package inference

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestCallBinaryPayloadJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hf-token" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "audio/wav" {
			t.Errorf("content-type = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "RIFF" {
			t.Errorf("body = %q", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"hello"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client())
	resp, err := c.Call(context.Background(), Request{
		Stage:   "asr",
		URL:     srv.URL,
		Payload: Binary{Data: []byte("RIFF"), ContentType: "audio/wav"},
		Headers: BearerHeaders("hf-token"),
		Expect:  ExpectJSON,
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.JSON().Get("text").String(); got != "hello" {
		t.Fatalf("text = %q", got)
	}
}

func TestCallJSONPayloadBinaryResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content-type = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"inputs":"hi there"}` {
			t.Errorf("body = %s", body)
		}
		w.Header().Set("Content-Type", "audio/flac")
		w.Write([]byte{1, 2, 3})
	}))
	defer srv.Close()

	c := NewClient(nil)
	resp, err := c.Call(context.Background(), Request{
		Stage:   "tts",
		URL:     srv.URL,
		Payload: JSON{Value: map[string]string{"inputs": "hi there"}},
		Expect:  ExpectBinary,
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if len(resp.Body) != 3 || resp.ContentType != "audio/flac" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestCallNon2xxSurfacesStatusAndBody(t *testing.T) {
	cases := []struct {
		name   string
		status int
		expect ResponseKind
	}{
		{"asr 500", http.StatusInternalServerError, ExpectJSON},
		{"tts 503", http.StatusServiceUnavailable, ExpectBinary},
		{"unauthorized", http.StatusUnauthorized, ExpectJSON},
		{"multiple choices", http.StatusMultipleChoices, ExpectBinary},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var hits int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				w.WriteHeader(tc.status)
				w.Write([]byte(`{"error":"Model is loading"}`))
			}))
			defer srv.Close()

			_, err := NewClient(nil).Call(context.Background(), Request{
				Stage:   "asr",
				URL:     srv.URL,
				Payload: Binary{Data: []byte("x")},
				Expect:  tc.expect,
			})

			var ie *Error
			if !errors.As(err, &ie) {
				t.Fatalf("err = %v, want *Error", err)
			}
			if ie.StatusCode != tc.status {
				t.Fatalf("status = %d", ie.StatusCode)
			}
			if ie.Body != `{"error":"Model is loading"}` {
				t.Fatalf("body = %q", ie.Body)
			}
			if ie.Stage != "asr" {
				t.Fatalf("stage = %q", ie.Stage)
			}
			if n := atomic.LoadInt32(&hits); n != 1 {
				t.Fatalf("hits = %d, want single attempt", n)
			}
		})
	}
}

func TestCallRejectsNonJSONWhenJSONExpected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := NewClient(nil).Call(context.Background(), Request{
		Stage:   "asr",
		URL:     srv.URL,
		Payload: Binary{Data: []byte("x")},
		Expect:  ExpectJSON,
	})

	var ie *Error
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want *Error", err)
	}
}

func TestBearerHeadersEmptyToken(t *testing.T) {
	if h := BearerHeaders(""); len(h) != 0 {
		t.Fatalf("headers = %v", h)
	}
}

func TestCallNilPayload(t *testing.T) {
	_, err := NewClient(nil).Call(context.Background(), Request{Stage: "tts", URL: "http://127.0.0.1:1"})
	if err == nil {
		t.Fatal("expected error")
	}
}
