package inference

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

type Caller interface {
	Call(ctx context.Context, req Request) (*Response, error)
}

type ResponseKind int

const (
	ExpectJSON ResponseKind = iota
	ExpectBinary
)

// Payload — либо Binary, либо JSON.
type Payload interface {
	isPayload()
}

type Binary struct {
	Data        []byte
	ContentType string
}

type JSON struct {
	Value any
}

func (Binary) isPayload() {}
func (JSON) isPayload()   {}

type Request struct {
	Stage   string // asr / tts, для ошибок и логов
	URL     string
	Payload Payload
	Headers map[string]string
	Expect  ResponseKind
}

type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r *Response) JSON() gjson.Result {
	return gjson.ParseBytes(r.Body)
}

// Error — non-2xx от inference-эндпоинта (или тело не того вида).
type Error struct {
	Stage      string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s inference failed: status %d: %s", e.Stage, e.StatusCode, strings.TrimSpace(e.Body))
}

func BearerHeaders(token string) map[string]string {
	if token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + token}
}
