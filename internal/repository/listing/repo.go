package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/helpboard/internal/db"
	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/collection"
	domlisting "github.com/kailas-cloud/helpboard/internal/domain/listing"
)

const keyPrefix = "helpboard"

// store is the consumer interface for listings (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetNX(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Incr(ctx context.Context, key string) (int64, error)
	ZAddNX(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key, member string) error
	ZRange(ctx context.Context, key string) ([]string, error)
}

// Repo implements usecase/listing.Repository and discovery.Source.
//
// Each listing is a JSON string at helpboard:{collection}:listing:{id}; the
// canonical order is a sorted set scored by an insertion sequence, so
// re-upserting a listing keeps its position.
type Repo struct {
	store store
}

// New creates a listing repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new listing, domain.ErrAlreadyExists if the ID is taken.
func (r *Repo) Create(ctx context.Context, col collection.Name, l *domlisting.Listing) error {
	data, err := json.Marshal(toDTO(l))
	if err != nil {
		return fmt.Errorf("marshal listing: %w", err)
	}
	key := listingKey(col, l.ID())
	if err := r.store.SetNX(ctx, key, data); err != nil {
		if errors.Is(err, db.ErrKeyExists) {
			return fmt.Errorf("listing %q: %w", l.ID(), domain.ErrAlreadyExists)
		}
		return fmt.Errorf("set %s: %w", key, err)
	}
	if err := r.index(ctx, col, l.ID()); err != nil {
		// Unindexed values are invisible to Listings; drop it so Create can be retried.
		if delErr := r.store.Del(ctx, key); delErr != nil && !errors.Is(delErr, db.ErrKeyNotFound) {
			return errors.Join(err, fmt.Errorf("rollback %s: %w", key, delErr))
		}
		return err
	}
	return nil
}

// Upsert creates or replaces a listing. Returns true if created.
// The position is (re)indexed on every call, so a retry repairs a write
// whose indexing failed; an existing position is kept.
func (r *Repo) Upsert(ctx context.Context, col collection.Name, l *domlisting.Listing) (bool, error) {
	data, err := json.Marshal(toDTO(l))
	if err != nil {
		return false, fmt.Errorf("marshal listing: %w", err)
	}
	key := listingKey(col, l.ID())

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return false, fmt.Errorf("set %s: %w", key, err)
	}
	if err := r.index(ctx, col, l.ID()); err != nil {
		return false, err
	}
	return !exists, nil
}

// Get returns a listing by ID.
func (r *Repo) Get(ctx context.Context, col collection.Name, id string) (domlisting.Listing, error) {
	key := listingKey(col, id)
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domlisting.Listing{}, domain.ErrListingNotFound
		}
		return domlisting.Listing{}, fmt.Errorf("get %s: %w", key, err)
	}
	var d listingDTO
	if err := json.Unmarshal(raw, &d); err != nil {
		return domlisting.Listing{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return d.toDomain(), nil
}

// Delete removes a listing and its position.
func (r *Repo) Delete(ctx context.Context, col collection.Name, id string) error {
	key := listingKey(col, id)
	if err := r.store.Del(ctx, key); err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domain.ErrListingNotFound
		}
		return fmt.Errorf("del %s: %w", key, err)
	}
	if err := r.store.ZRem(ctx, orderKey(col), id); err != nil {
		return fmt.Errorf("zrem %s: %w", orderKey(col), err)
	}
	return nil
}

// Listings returns every listing of the collection in insertion order.
// Order entries whose value is gone are skipped.
func (r *Repo) Listings(ctx context.Context, col collection.Name) ([]domlisting.Listing, error) {
	ids, err := r.store.ZRange(ctx, orderKey(col))
	if err != nil {
		return nil, fmt.Errorf("zrange %s: %w", orderKey(col), err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = listingKey(col, id)
	}
	values, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("mget %s: %w", col, err)
	}

	out := make([]domlisting.Listing, 0, len(values))
	for i, raw := range values {
		if raw == nil {
			continue
		}
		var d listingDTO
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *Repo) index(ctx context.Context, col collection.Name, id string) error {
	seq, err := r.store.Incr(ctx, seqKey(col))
	if err != nil {
		return fmt.Errorf("incr %s: %w", seqKey(col), err)
	}
	if err := r.store.ZAddNX(ctx, orderKey(col), float64(seq), id); err != nil {
		return fmt.Errorf("zadd %s: %w", orderKey(col), err)
	}
	return nil
}

func listingKey(col collection.Name, id string) string {
	return keyPrefix + ":" + string(col) + ":listing:" + id
}

func orderKey(col collection.Name) string {
	return keyPrefix + ":" + string(col) + ":order"
}

func seqKey(col collection.Name) string {
	return keyPrefix + ":" + string(col) + ":seq"
}
