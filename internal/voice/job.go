package voice

import (
	"strings"

	"github.com/rs/xid"
)

type State string

const (
	StateReceived    State = "received"
	StateDownloaded  State = "downloaded"
	StateConverted   State = "converted"
	StateTranscribed State = "transcribed"
	StateSynthesized State = "synthesized"
	StateReplied     State = "replied"
	StateErrored     State = "errored"
)

// Job — одна голосовая заявка. Живёт только на время Run, нигде не сохраняется.
type Job struct {
	ID     string
	ChatID int64
	FileID string

	InputPath        string
	ConvertedPath    string
	Transcript       string
	ReplyPath        string
	ReplyContentType string

	State State
}

// NewJob — id = file_unique_id + xid, чтобы два одновременных форварда
// одного и того же файла не делили staging.
func NewJob(chatID int64, fileID, fileUniqueID string) *Job {
	base := fileUniqueID
	if base == "" {
		base = fileID
	}

	return &Job{
		ID:     sanitizeID(base) + "-" + xid.New().String(),
		ChatID: chatID,
		FileID: fileID,
		State:  StateReceived,
	}
}

func sanitizeID(s string) string {
	if len(s) > 64 {
		s = s[:64]
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
	if s == "" {
		return "voice"
	}
	return s
}
