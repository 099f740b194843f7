package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/helpboard/internal/domain/collection"
	domlisting "github.com/kailas-cloud/helpboard/internal/domain/listing"
)

// Service handles listing CRUD.
type Service struct {
	repo  Repository
	now   func() time.Time
	newID func() string
}

// New creates a listing service.
func New(repo Repository) *Service {
	return &Service{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Create validates and stores a new listing. A missing ID is generated,
// a zero CreatedAt is set to now. Fails with ErrAlreadyExists on duplicates.
func (s *Service) Create(ctx context.Context, colName string, p domlisting.Params) (domlisting.Listing, error) {
	col, err := collection.Parse(colName)
	if err != nil {
		return domlisting.Listing{}, err
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	l, err := s.build(p)
	if err != nil {
		return domlisting.Listing{}, err
	}
	if err := s.repo.Create(ctx, col, &l); err != nil {
		return domlisting.Listing{}, fmt.Errorf("create listing: %w", err)
	}
	return l, nil
}

// Upsert creates or replaces a listing by ID.
// Returns true if the listing was created, false if updated.
func (s *Service) Upsert(ctx context.Context, colName string, p domlisting.Params) (domlisting.Listing, bool, error) {
	col, err := collection.Parse(colName)
	if err != nil {
		return domlisting.Listing{}, false, err
	}
	l, err := s.build(p)
	if err != nil {
		return domlisting.Listing{}, false, err
	}
	created, err := s.repo.Upsert(ctx, col, &l)
	if err != nil {
		return domlisting.Listing{}, false, fmt.Errorf("upsert listing: %w", err)
	}
	return l, created, nil
}

// Get retrieves a listing by collection and ID.
func (s *Service) Get(ctx context.Context, colName, id string) (domlisting.Listing, error) {
	col, err := collection.Parse(colName)
	if err != nil {
		return domlisting.Listing{}, err
	}
	l, err := s.repo.Get(ctx, col, id)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, colName, id string) error {
	col, err := collection.Parse(colName)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, col, id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// List returns every listing of a collection in canonical order.
func (s *Service) List(ctx context.Context, colName string) ([]domlisting.Listing, error) {
	col, err := collection.Parse(colName)
	if err != nil {
		return nil, err
	}
	ls, err := s.repo.Listings(ctx, col)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return ls, nil
}

func (s *Service) build(p domlisting.Params) (domlisting.Listing, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}
	return domlisting.New(p) //nolint:wrapcheck // validation errors carry the field already
}
