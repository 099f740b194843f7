package listing

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/kailas-cloud/helpboard/internal/db"
	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	domlisting "github.com/kailas-cloud/helpboard/internal/domain/listing"
)

// mockStore is an in-memory store; the xxxFn hooks override single calls.
type mockStore struct {
	kv   map[string][]byte
	sets map[string]map[string]float64
	ctr  map[string]int64

	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte) error
	existsFn func(ctx context.Context, key string) (bool, error)
	incrFn   func(ctx context.Context, key string) (int64, error)
	zrangeFn func(ctx context.Context, key string) ([]string, error)
}

func newMockStore() *mockStore {
	return &mockStore{
		kv:   make(map[string][]byte),
		sets: make(map[string]map[string]float64),
		ctr:  make(map[string]int64),
	}
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.kv[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) GetMulti(_ context.Context, keys []string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = m.kv[k]
	}
	return out, nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.kv[key] = value
	return nil
}

func (m *mockStore) SetNX(_ context.Context, key string, value []byte) error {
	if _, ok := m.kv[key]; ok {
		return db.ErrKeyExists
	}
	m.kv[key] = value
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	if _, ok := m.kv[key]; !ok {
		return db.ErrKeyNotFound
	}
	delete(m.kv, key)
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	_, ok := m.kv[key]
	return ok, nil
}

func (m *mockStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, key)
	}
	m.ctr[key]++
	return m.ctr[key], nil
}

func (m *mockStore) ZAddNX(_ context.Context, key string, score float64, member string) error {
	set, ok := m.sets[key]
	if !ok {
		set = make(map[string]float64)
		m.sets[key] = set
	}
	if _, ok := set[member]; !ok {
		set[member] = score
	}
	return nil
}

func (m *mockStore) ZRem(_ context.Context, key, member string) error {
	delete(m.sets[key], member)
	return nil
}

func (m *mockStore) ZRange(ctx context.Context, key string) ([]string, error) {
	if m.zrangeFn != nil {
		return m.zrangeFn(ctx, key)
	}
	set := m.sets[key]
	members := make([]string, 0, len(set))
	for k := range set {
		members = append(members, k)
	}
	sort.Slice(members, func(i, j int) bool { return set[members[i]] < set[members[j]] })
	return members, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := newMockStore()
	return New(ms), ms
}

func testListing(t *testing.T, id string) domlisting.Listing {
	t.Helper()
	l, err := domlisting.New(domlisting.Params{
		ID:          id,
		Title:       "Generator repair in Toamasina",
		Description: "Need someone this week",
		Category:    domlisting.Repairs,
		Kind:        domlisting.HelpRequest,
		Urgency:     domlisting.Medium,
		Status:      domlisting.Open,
		Location:    &geo.Point{Lat: -18.1492, Lon: 49.4023},
		CreatedAt:   time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
		Region:      "Atsinanana",
	})
	if err != nil {
		t.Fatalf("listing.New: %v", err)
	}
	return l
}
