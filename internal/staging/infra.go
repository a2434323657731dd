package staging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type fsStore struct {
	root string

	mu    sync.Mutex
	ready bool
}

// NewFSStore — root создаётся лениво, перед первой аллокацией.
func NewFSStore(root string) Store {
	return &fsStore{root: root}
}

func (s *fsStore) Path(jobID, suffix string) string {
	return filepath.Join(s.root, jobID, jobID+suffix)
}

func (s *fsStore) Allocate(jobID, suffix string) (string, error) {
	if err := validateJobID(jobID); err != nil {
		return "", &StorageError{Op: "allocate", Path: s.root, Err: err}
	}
	if strings.ContainsAny(suffix, `/\`) {
		return "", &StorageError{Op: "allocate", Path: s.root, Err: fmt.Errorf("invalid suffix %q", suffix)}
	}

	if err := s.ensureRoot(); err != nil {
		return "", &StorageError{Op: "allocate", Path: s.root, Err: err}
	}

	dir := filepath.Join(s.root, jobID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &StorageError{Op: "allocate", Path: dir, Err: err}
	}

	return s.Path(jobID, suffix), nil
}

// ensureRoot — root создаётся один раз; неудачная попытка повторяется при следующей аллокации.
func (s *fsStore) ensureRoot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return err
	}
	s.ready = true
	return nil
}

func (s *fsStore) Write(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &StorageError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// WriteStream копирует поток в файл до конца. Один исход: либо файл целиком, либо ошибка.
func (s *fsStore) WriteStream(path string, r io.Reader) (int64, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, &StorageError{Op: "write", Path: path, Err: err}
	}

	n, err := io.Copy(out, r)
	if err != nil {
		out.Close()
		return n, &StorageError{Op: "write", Path: path, Err: err}
	}
	if err := out.Close(); err != nil {
		return n, &StorageError{Op: "write", Path: path, Err: err}
	}

	return n, nil
}

func (s *fsStore) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StorageError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// Release удаляет каталог задачи целиком. Повторный вызов — no-op.
func (s *fsStore) Release(jobID string) error {
	if err := validateJobID(jobID); err != nil {
		return &StorageError{Op: "release", Path: s.root, Err: err}
	}

	dir := filepath.Join(s.root, jobID)
	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Op: "release", Path: dir, Err: err}
	}
	return nil
}

func validateJobID(jobID string) error {
	switch {
	case jobID == "":
		return errors.New("empty job id")
	case jobID == "." || jobID == "..":
		return fmt.Errorf("invalid job id %q", jobID)
	case strings.ContainsAny(jobID, `/\`):
		return fmt.Errorf("job id %q contains path separator", jobID)
	}
	return nil
}
