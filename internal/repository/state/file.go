package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/appstate"
)

// FileStore keeps one JSON file per session in a directory. Writes replace
// the file atomically so a crash never leaves a torn session.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(sessionID string) string {
	return filepath.Join(s.dir, sessionID+".json")
}

// Load reads one session. The ID must already be validated: it becomes a
// file name.
func (s *FileStore) Load(_ context.Context, sessionID string) (appstate.State, error) {
	if err := appstate.ValidateSessionID(sessionID); err != nil {
		return appstate.State{}, err //nolint:wrapcheck // domain error
	}
	data, err := os.ReadFile(s.path(sessionID))
	if errors.Is(err, fs.ErrNotExist) {
		return appstate.State{}, fmt.Errorf("load session %s: %w", sessionID, domain.ErrSessionNotFound)
	}
	if err != nil {
		return appstate.State{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	var st appstate.State
	if err := json.Unmarshal(data, &st); err != nil {
		return appstate.State{}, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return st, nil
}

// Save writes one session.
func (s *FileStore) Save(_ context.Context, st appstate.State) error {
	if err := appstate.ValidateSessionID(st.SessionID); err != nil {
		return err //nolint:wrapcheck // domain error
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	path := s.path(st.SessionID)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save session %s: %w", st.SessionID, err)
	}
	// atomic.WriteFile keeps the temp file's mode for new files
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("chmod session %s: %w", st.SessionID, err)
	}
	return nil
}

// HealthCheck verifies the directory still exists.
func (s *FileStore) HealthCheck(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("state dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("state dir %s is not a directory", s.dir)
	}
	return nil
}
