package voice

import "fmt"

type Stage string

const (
	StageDownload   Stage = "download"
	StageConvert    Stage = "conversion"
	StageTranscribe Stage = "transcription"
	StageSynthesize Stage = "synthesis"
	StageReply      Stage = "reply"
)

// StageError — на каком шаге упала задача.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

type DownloadError struct {
	FileID     string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download %s: status %d: %v", e.FileID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("download %s: %v", e.FileID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

type SendError struct {
	ChatID int64
	Kind   string // text / audio
	Err    error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send %s to chat %d: %v", e.Kind, e.ChatID, e.Err)
}

func (e *SendError) Unwrap() error {
	return e.Err
}
