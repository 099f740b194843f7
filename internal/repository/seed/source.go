// Package seed serves listings from a JSONC seed file, optionally reloading it
// when the file changes.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/tailscale/hujson"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/collection"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/metrics"
)

// Dataset holds the listings of every collection in file order.
type Dataset map[collection.Name][]listing.Listing

// Parse decodes a JSONC seed document. Every invalid record is reported;
// the dataset is returned only when all records are valid.
func Parse(data []byte) (Dataset, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	var f seedFile
	if err := json.Unmarshal(standardized, &f); err != nil {
		return nil, fmt.Errorf("invalid seed JSON: %w", err)
	}

	var errs error
	ds := Dataset{}
	add := func(col collection.Name, i int, l listing.Listing, err error) {
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s[%d]: %w", col, i, err))
			return
		}
		ds[col] = append(ds[col], l)
	}
	for i := range f.Posts {
		l, err := f.Posts[i].toDomain()
		add(collection.Posts, i, l, err)
	}
	for i := range f.Community {
		l, err := f.Community[i].toDomain()
		add(collection.Community, i, l, err)
	}
	for i := range f.Helpers {
		l, err := f.Helpers[i].toDomain()
		add(collection.Helpers, i, l, err)
	}
	for col, ls := range ds {
		errs = multierr.Append(errs, checkUnique(col, ls))
	}
	if errs != nil {
		return nil, errs
	}
	return ds, nil
}

func checkUnique(col collection.Name, ls []listing.Listing) error {
	seen := make(map[string]struct{}, len(ls))
	var errs error
	for i := range ls {
		id := ls[i].ID()
		if _, dup := seen[id]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%s: duplicate id %q: %w", col, id, domain.ErrAlreadyExists))
		}
		seen[id] = struct{}{}
	}
	return errs
}

// LoadFile reads and parses a seed file.
func LoadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse seed %s: %w", path, err)
	}
	return ds, nil
}

// Source implements discovery.Source over a seed file.
// A failed reload keeps the previously loaded dataset.
type Source struct {
	path   string
	logger *zap.Logger

	mu      sync.RWMutex
	data    Dataset
	lastErr error
}

// NewSource loads path and returns a Source serving it.
func NewSource(path string, logger *zap.Logger) (*Source, error) {
	ds, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return &Source{path: path, logger: logger, data: ds}, nil
}

// NewStatic serves a fixed dataset (tests, SDK).
func NewStatic(ds Dataset) *Source {
	return &Source{data: ds, logger: zap.NewNop()}
}

// Listings returns a copy of the collection's listings.
func (s *Source) Listings(_ context.Context, col collection.Name) ([]listing.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.data[col]), nil
}

// Dataset returns the loaded listings of every collection.
func (s *Source) Dataset() Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Dataset, len(s.data))
	for col, ls := range s.data {
		out[col] = slices.Clone(ls)
	}
	return out
}

// Reload re-reads the seed file.
func (s *Source) Reload() error {
	if s.path == "" {
		return errors.New("static seed source cannot be reloaded")
	}
	ds, err := LoadFile(s.path)

	s.mu.Lock()
	s.lastErr = err
	if err == nil {
		s.data = ds
	}
	s.mu.Unlock()

	if err != nil {
		metrics.SeedReloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.SeedReloadsTotal.WithLabelValues("ok").Inc()
	return nil
}

// HealthCheck reports the error of the last reload, if any.
func (s *Source) HealthCheck(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Watch reloads the seed whenever the file is written, created or renamed into
// place. It blocks until ctx is done. The parent directory is watched so that
// editors replacing the file atomically are picked up.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return errors.New("static seed source cannot be watched")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	target := filepath.Clean(s.path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("Seed reload failed, keeping previous data",
					zap.String("path", s.path), zap.Error(err))
				continue
			}
			s.logger.Info("Seed reloaded", zap.String("path", s.path))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Seed watcher error", zap.Error(err))
		}
	}
}

// Upserter stores listings (the listing repository).
type Upserter interface {
	Upsert(ctx context.Context, col collection.Name, l *listing.Listing) (bool, error)
}

// Import writes every listing of ds into dst in file order and returns how
// many were newly created.
func Import(ctx context.Context, ds Dataset, dst Upserter) (int, error) {
	created := 0
	for _, col := range collection.Names() {
		for i := range ds[col] {
			ok, err := dst.Upsert(ctx, col, &ds[col][i])
			if err != nil {
				return created, fmt.Errorf("import %s/%s: %w", col, ds[col][i].ID(), err)
			}
			if ok {
				created++
			}
		}
	}
	return created, nil
}
