package inference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

type Client struct {
	client *http.Client
}

// NewClient — без таймаута и без ретраев: одна попытка на вызов.
func NewClient(client *http.Client) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{client: client}
}

func (c *Client) Call(ctx context.Context, in Request) (*Response, error) {
	body, contentType, err := encodePayload(in.Payload)
	if err != nil {
		return nil, fmt.Errorf("%s encode payload: %w", in.Stage, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, in.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s new request: %w", in.Stage, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range in.Headers {
		req.Header.Set(k, v)
	}
	if in.Expect == ExpectJSON {
		req.Header.Set("Accept", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", in.Stage, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", in.Stage, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Stage: in.Stage, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if in.Expect == ExpectJSON && !gjson.ValidBytes(raw) {
		return nil, &Error{Stage: in.Stage, StatusCode: resp.StatusCode, Body: "invalid json: " + string(raw)}
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}, nil
}

func encodePayload(p Payload) ([]byte, string, error) {
	switch v := p.(type) {
	case Binary:
		ct := v.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		return v.Data, ct, nil
	case JSON:
		b, err := json.Marshal(v.Value)
		if err != nil {
			return nil, "", err
		}
		return b, "application/json", nil
	case nil:
		return nil, "", errors.New("nil payload")
	default:
		return nil, "", fmt.Errorf("unsupported payload %T", p)
	}
}
