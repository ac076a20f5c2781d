package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/jsamuelsen/quotebook/internal/domain"
)

// FileStore keeps every slot in a single JSON object file.
// Writes go to a temporary file in the same directory and are renamed into
// place, so a crash never leaves a half-written file behind.
type FileStore struct {
	mu     sync.Mutex
	path   string
	slots  map[string]string
	logger *slog.Logger
}

// OpenFileStore reads path if it exists. A missing file starts empty; an
// unreadable JSON file is logged and also starts empty, so the quote list
// falls back to its defaults on load.
func OpenFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &FileStore{
		path:   path,
		slots:  make(map[string]string),
		logger: logger,
	}

	data, err := os.ReadFile(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("reading slot file: %w", err)
	}

	if err := json.Unmarshal(data, &s.slots); err != nil {
		logger.Warn("slot file is not a JSON object, starting empty",
			slog.String("path", path),
			slog.Any("error", err),
		)

		s.slots = make(map[string]string)
	}

	return s, nil
}

// Get returns the slot value or a NotFoundError.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.slots[key]
	if !ok {
		return "", domain.NewNotFoundError("slot", key)
	}

	return v, nil
}

// Set stores value under key and rewrites the file.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.slots[key]
	s.slots[key] = value

	if err := s.flush(); err != nil {
		if had {
			s.slots[key] = prev
		} else {
			delete(s.slots, key)
		}

		return err
	}

	return nil
}

// Delete removes key and rewrites the file.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.slots[key]
	if !had {
		return nil
	}

	delete(s.slots, key)

	if err := s.flush(); err != nil {
		s.slots[key] = prev

		return err
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *FileStore) Name() string {
	return "slot-store"
}

// Check verifies the directory holding the slot file is still there.
func (s *FileStore) Check(_ context.Context) error {
	info, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return fmt.Errorf("slot directory: %w", err)
	}

	if !info.IsDir() {
		return fmt.Errorf("slot directory %q is not a directory", filepath.Dir(s.path))
	}

	return nil
}

func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.slots, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding slots: %w", err)
	}

	dir := filepath.Dir(s.path)

	tmp, err := os.CreateTemp(dir, ".slots-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp slot file: %w", err)
	}

	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("writing slot file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)

		return fmt.Errorf("replacing slot file: %w", err)
	}

	return nil
}
