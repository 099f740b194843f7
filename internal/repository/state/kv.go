package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/helpboard/internal/db"
	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/appstate"
)

// kv is the slice of db.KVStore the session store needs.
type kv interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// KVStore keeps sessions in the shared key-value store.
type KVStore struct {
	store kv
}

// NewKVStore wraps a key-value store.
func NewKVStore(s kv) *KVStore {
	return &KVStore{store: s}
}

func sessionKey(id string) string {
	return "helpboard:session:" + id
}

// Load reads one session.
func (s *KVStore) Load(ctx context.Context, sessionID string) (appstate.State, error) {
	data, err := s.store.Get(ctx, sessionKey(sessionID))
	if errors.Is(err, db.ErrKeyNotFound) {
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
func (s *KVStore) Save(ctx context.Context, st appstate.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.store.Set(ctx, sessionKey(st.SessionID), data); err != nil {
		return fmt.Errorf("save session %s: %w", st.SessionID, err)
	}
	return nil
}
