// Package state persists per-session application state.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/appstate"
)

var sessionsBucket = []byte("sessions")

// BoltStore keeps sessions in a single bbolt file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(sessionsBucket)
		return createErr //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error {
	return s.db.Close() //nolint:wrapcheck // passthrough
}

// Load reads one session.
func (s *BoltStore) Load(_ context.Context, sessionID string) (appstate.State, error) {
	var st appstate.State
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(sessionsBucket).Get([]byte(sessionID))
		if data == nil {
			return domain.ErrSessionNotFound
		}
		return json.Unmarshal(data, &st) //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		return appstate.State{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return st, nil
}

// Save writes one session.
func (s *BoltStore) Save(_ context.Context, st appstate.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put([]byte(st.SessionID), data) //nolint:wrapcheck // wrapped below
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", st.SessionID, err)
	}
	return nil
}

// HealthCheck verifies the bucket is readable.
func (s *BoltStore) HealthCheck(_ context.Context) error {
	err := s.db.View(func(tx *bolt.Tx) error {
		if tx.Bucket(sessionsBucket) == nil {
			return fmt.Errorf("bucket %s missing", sessionsBucket)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("bolt health: %w", err)
	}
	return nil
}
