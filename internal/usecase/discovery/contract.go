package discovery

import (
	"context"

	"github.com/kailas-cloud/helpboard/internal/domain/collection"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
)

// Source loads the listings of a collection in their canonical order.
// Implementations must not retain or mutate the returned slice after the call.
type Source interface {
	Listings(ctx context.Context, col collection.Name) ([]listing.Listing, error)
}
