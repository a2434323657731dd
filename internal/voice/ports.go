package voice

import (
	"context"
	"io"
)

// FileSource — платформенная ссылка на файл → поток байт.
type FileSource interface {
	Open(ctx context.Context, fileID string) (io.ReadCloser, error)
}

type OutboundAudio struct {
	Path        string
	ContentType string
	Title       string
}

type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendAudio(ctx context.Context, chatID int64, audio OutboundAudio) error
}

type Converter interface {
	Convert(ctx context.Context, inputPath, inputFormat, outputFormat string) (string, error)
}

type ErrorNotifier interface {
	Notify(ctx context.Context, err error, details string) error
}
