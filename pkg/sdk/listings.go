package helpboard

import (
	"context"
	"fmt"
	"time"
)

// ListingService manages the listings of one collection.
type ListingService struct {
	collection Collection
	svc        listingUseCase
	obs        *observer
}

// Create stores a new listing. An empty ID is generated.
func (s *ListingService) Create(ctx context.Context, p ListingParams) (_ Listing, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.create", s.collection, start, err) }()

	if s.svc == nil {
		return Listing{}, readOnly("create listing")
	}
	l, err := s.svc.Create(ctx, string(s.collection), p)
	if err != nil {
		return Listing{}, fmt.Errorf("create listing: %w", err)
	}
	return l, nil
}

// Upsert creates or replaces a listing by ID. Returns true if created.
func (s *ListingService) Upsert(ctx context.Context, p ListingParams) (_ Listing, created bool, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.upsert", s.collection, start, err) }()

	if s.svc == nil {
		return Listing{}, false, readOnly("upsert listing")
	}
	l, created, err := s.svc.Upsert(ctx, string(s.collection), p)
	if err != nil {
		return Listing{}, false, fmt.Errorf("upsert listing: %w", err)
	}
	return l, created, nil
}

// Get retrieves a listing by ID.
func (s *ListingService) Get(ctx context.Context, id string) (_ Listing, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.get", s.collection, start, err) }()

	if s.svc == nil {
		return Listing{}, readOnly("get listing")
	}
	l, err := s.svc.Get(ctx, string(s.collection), id)
	if err != nil {
		return Listing{}, fmt.Errorf("get listing: %w", err)
	}
	return l, nil
}

// Delete removes a listing by ID.
func (s *ListingService) Delete(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.delete", s.collection, start, err) }()

	if s.svc == nil {
		return readOnly("delete listing")
	}
	if err = s.svc.Delete(ctx, string(s.collection), id); err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	return nil
}

// List returns every listing of the collection in canonical order.
func (s *ListingService) List(ctx context.Context) (_ []Listing, err error) {
	start := time.Now()
	defer func() { s.obs.observe("listing.list", s.collection, start, err) }()

	if s.svc == nil {
		return nil, readOnly("list listings")
	}
	ls, err := s.svc.List(ctx, string(s.collection))
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return ls, nil
}
