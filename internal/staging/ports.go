package staging

import (
	"fmt"
	"io"
)

// Store — временные файлы одной голосовой задачи.
// Все файлы задачи лежат в <root>/<jobID>/ и удаляются через Release.
type Store interface {
	Path(jobID, suffix string) string
	Allocate(jobID, suffix string) (string, error)
	Write(path string, data []byte) error
	WriteStream(path string, r io.Reader) (int64, error)
	Read(path string) ([]byte, error)
	Release(jobID string) error
}

// StorageError — диск недоступен / не пишется.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("staging %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
