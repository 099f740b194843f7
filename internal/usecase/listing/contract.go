package listing

import (
	"context"

	"github.com/kailas-cloud/helpboard/internal/domain/collection"
	domlisting "github.com/kailas-cloud/helpboard/internal/domain/listing"
)

// Repository defines the storage contract for listings.
type Repository interface {
	Create(ctx context.Context, col collection.Name, l *domlisting.Listing) error
	Upsert(ctx context.Context, col collection.Name, l *domlisting.Listing) (created bool, err error)
	Get(ctx context.Context, col collection.Name, id string) (domlisting.Listing, error)
	Delete(ctx context.Context, col collection.Name, id string) error
	Listings(ctx context.Context, col collection.Name) ([]domlisting.Listing, error)
}
