package speech

import (
	"context"
)

// === Единый сервис (и для стт и для ттс) ===

type Service struct {
	stt Transcriber
	tts Synthesizer
}

func NewService(stt Transcriber, tts Synthesizer) *Service {
	return &Service{
		stt: stt,
		tts: tts,
	}
}

func (s *Service) Transcribe(ctx context.Context, audio []byte, contentType string) (string, error) {
	return s.stt.Transcribe(ctx, audio, contentType)
}

func (s *Service) Synthesize(ctx context.Context, text string) (Audio, error) {
	return s.tts.Synthesize(ctx, text)
}
