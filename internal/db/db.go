package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	KVStore
	OrderedSetStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMulti returns values in key order; missing keys yield nil entries.
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetNX stores value only if key is absent, ErrKeyExists otherwise.
	SetNX(ctx context.Context, key string, value []byte) error
	// Del removes key, ErrKeyNotFound if it did not exist.
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
}

// OrderedSetStore keeps members ordered by score.
type OrderedSetStore interface {
	// ZAddNX adds member with score unless it is already present (its score is kept).
	ZAddNX(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key, member string) error
	// ZRange returns every member by ascending score.
	ZRange(ctx context.Context, key string) ([]string, error)
}
