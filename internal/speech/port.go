package speech

import "context"

type Audio struct {
	Data        []byte
	ContentType string
}

type Transcriber interface {
	// голос → текст; "" если сервис ответил без текста
	Transcribe(ctx context.Context, audio []byte, contentType string) (string, error)
}

type Synthesizer interface {
	// текст → голос
	Synthesize(ctx context.Context, text string) (Audio, error)
}
