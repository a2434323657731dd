package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/Vovarama1992/aurivox/internal/speech"
	"github.com/Vovarama1992/aurivox/internal/staging"
)

const (
	MsgApology           = "⚠️ Sorry, I couldn’t process your voice note."
	TranscriptFallback   = "⚠️ Could not transcribe audio."
	transcriptPrefix     = "📝 Transcription: "
	replyTitle           = "Aurivox reply"
	inputFormat          = "ogg"
	convertedFormat      = "wav"
	convertedContentType = "audio/wav"
)

type Pipeline struct {
	source    FileSource
	messenger Messenger
	store     staging.Store
	converter Converter
	stt       speech.Transcriber
	tts       speech.Synthesizer
	notify    ErrorNotifier // может быть nil
	log       *zap.Logger
}

func NewPipeline(
	source FileSource,
	messenger Messenger,
	store staging.Store,
	converter Converter,
	stt speech.Transcriber,
	tts speech.Synthesizer,
	notify ErrorNotifier,
	log *zap.Logger,
) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		source:    source,
		messenger: messenger,
		store:     store,
		converter: converter,
		stt:       stt,
		tts:       tts,
		notify:    notify,
		log:       log,
	}
}

// Run доводит задачу до конца: Replied или Errored. Staging задачи
// освобождается ровно один раз, после попытки ответа.
func (p *Pipeline) Run(ctx context.Context, job *Job) (err error) {
	log := p.log.With(
		zap.String("job_id", job.ID),
		zap.Int64("chat_id", job.ChatID),
		zap.String("file_id", job.FileID),
	)
	log.Info("[voice] start")

	defer safe(log, "release", func() { p.release(job, log) })

	failed := false
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if failed {
			// извинение уже было, второе не шлём
			log.Error("[voice] panic after failure", zap.Any("panic", r))
			return
		}
		err = &StageError{Stage: stageOf(job.State), Err: fmt.Errorf("panic: %v", r)}
		p.fail(ctx, job, err, log)
	}()

	if err = p.process(ctx, job, log); err != nil {
		failed = true
		p.fail(ctx, job, err, log)
		return err
	}

	log.Info("[voice] done")
	return nil
}

func (p *Pipeline) process(ctx context.Context, job *Job, log *zap.Logger) error {
	// 1) скачать
	if err := p.download(ctx, job, log); err != nil {
		return &StageError{Stage: StageDownload, Err: err}
	}
	job.State = StateDownloaded

	// 2) ogg → wav
	converted, err := p.converter.Convert(ctx, job.InputPath, inputFormat, convertedFormat)
	if err != nil {
		return &StageError{Stage: StageConvert, Err: err}
	}
	job.ConvertedPath = converted
	job.State = StateConverted
	log.Info("[voice] converted", zap.String("path", converted))

	// 3) голос → текст
	if err := p.transcribe(ctx, job, log); err != nil {
		return &StageError{Stage: StageTranscribe, Err: err}
	}
	job.State = StateTranscribed

	if err := p.messenger.SendText(ctx, job.ChatID, transcriptPrefix+job.Transcript); err != nil {
		// не фатально: дальше всё равно пробуем озвучить
		log.Warn("[voice] transcript send fail",
			zap.Error(&SendError{ChatID: job.ChatID, Kind: "text", Err: err}))
	}

	// 4) текст → голос
	if err := p.synthesize(ctx, job, log); err != nil {
		return &StageError{Stage: StageSynthesize, Err: err}
	}
	job.State = StateSynthesized

	// 5) ответ
	err = p.messenger.SendAudio(ctx, job.ChatID, OutboundAudio{
		Path:        job.ReplyPath,
		ContentType: job.ReplyContentType,
		Title:       replyTitle,
	})
	if err != nil {
		return &StageError{Stage: StageReply, Err: &SendError{ChatID: job.ChatID, Kind: "audio", Err: err}}
	}
	job.State = StateReplied
	log.Info("[voice] sent 🎤")

	return nil
}

func (p *Pipeline) download(ctx context.Context, job *Job, log *zap.Logger) error {
	rc, err := p.source.Open(ctx, job.FileID)
	if err != nil {
		var de *DownloadError
		if errors.As(err, &de) {
			return err
		}
		return &DownloadError{FileID: job.FileID, Err: err}
	}
	defer rc.Close()

	path, err := p.store.Allocate(job.ID, "."+inputFormat)
	if err != nil {
		return err
	}

	src := &sourceReader{r: rc}
	n, err := p.store.WriteStream(path, src)
	if err != nil {
		if src.err != nil {
			return &DownloadError{FileID: job.FileID, Err: src.err}
		}
		return err
	}
	if n == 0 {
		return &DownloadError{FileID: job.FileID, Err: errors.New("empty file")}
	}

	job.InputPath = path
	log.Info("[voice] saved", zap.String("path", path), zap.String("size", humanize.Bytes(uint64(n))))
	return nil
}

func (p *Pipeline) transcribe(ctx context.Context, job *Job, log *zap.Logger) error {
	audio, err := p.store.Read(job.ConvertedPath)
	if err != nil {
		return err
	}

	text, err := p.stt.Transcribe(ctx, audio, convertedContentType)
	if err != nil {
		return err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		// не ошибка: пользователь всё равно получит ответ
		log.Warn("[voice] no transcript in asr response, using fallback")
		text = TranscriptFallback
	}

	job.Transcript = text
	log.Info("[voice] transcribed", zap.String("text", text))
	return nil
}

func (p *Pipeline) synthesize(ctx context.Context, job *Job, log *zap.Logger) error {
	audio, err := p.tts.Synthesize(ctx, job.Transcript)
	if err != nil {
		return err
	}
	if len(audio.Data) == 0 {
		return errors.New("tts returned empty audio")
	}

	path, err := p.store.Allocate(job.ID, "_reply"+speech.ExtensionFor(audio.ContentType))
	if err != nil {
		return err
	}
	if err := p.store.Write(path, audio.Data); err != nil {
		return err
	}

	job.ReplyPath = path
	job.ReplyContentType = audio.ContentType
	log.Info("[voice] synthesized",
		zap.String("path", path),
		zap.String("content_type", audio.ContentType),
		zap.String("size", humanize.Bytes(uint64(len(audio.Data)))),
	)
	return nil
}

// fail — одно извинение пользователю, полная диагностика в лог, алерт админам.
func (p *Pipeline) fail(ctx context.Context, job *Job, err error, log *zap.Logger) {
	stage := stageOf(job.State)
	var se *StageError
	if errors.As(err, &se) {
		stage = se.Stage
	}
	job.State = StateErrored

	log.Error("[voice] job failed", zap.String("stage", string(stage)), zap.Error(err))

	safe(log, "apology", func() {
		if sendErr := p.messenger.SendText(ctx, job.ChatID, MsgApology); sendErr != nil {
			log.Error("[voice] apology send fail",
				zap.Error(&SendError{ChatID: job.ChatID, Kind: "text", Err: sendErr}))
		}
	})

	if p.notify == nil {
		return
	}
	details := fmt.Sprintf("job=%s chat=%d stage=%s", job.ID, job.ChatID, stage)
	safe(log, "notify", func() {
		if nErr := p.notify.Notify(ctx, err, details); nErr != nil {
			log.Warn("[voice] admin notify fail", zap.Error(nErr))
		}
	})
}

// safe — best-effort вызов: паника логируется и дальше не идёт.
func safe(log *zap.Logger, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("[voice] "+what+" panic", zap.Any("panic", r))
		}
	}()
	fn()
}

// sourceReader запоминает ошибку чтения из сети, чтобы отличить её от ошибки записи на диск.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(b []byte) (int, error) {
	n, err := s.r.Read(b)
	if err != nil && err != io.EOF {
		s.err = err
	}
	return n, err
}

func (p *Pipeline) release(job *Job, log *zap.Logger) {
	if err := p.store.Release(job.ID); err != nil {
		log.Error("[voice] staging release fail", zap.Error(err))
		return
	}
	log.Debug("[voice] staging released")
}

// stageOf — шаг, который выполнялся, пока задача была в состоянии s.
func stageOf(s State) Stage {
	switch s {
	case StateReceived:
		return StageDownload
	case StateDownloaded:
		return StageConvert
	case StateConverted:
		return StageTranscribe
	case StateTranscribed:
		return StageSynthesize
	default:
		return StageReply
	}
}
