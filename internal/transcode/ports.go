package transcode

import (
	"context"
	"fmt"
)

type Transcoder interface {
	// Convert блокирует до завершения ffmpeg. Выходной файл лежит рядом с входным.
	Convert(ctx context.Context, inputPath, inputFormat, outputFormat string) (string, error)
	Duration(ctx context.Context, path string) (float64, error)
}

// Error — ошибка внешнего инструмента (ffmpeg / ffprobe) с его диагностикой.
type Error struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *Error) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed (exit=%d): %v", e.Tool, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("%s failed (exit=%d): %v: %s", e.Tool, e.ExitCode, e.Err, e.Stderr)
}

func (e *Error) Unwrap() error {
	return e.Err
}
