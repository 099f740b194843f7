package helpboard

import "github.com/kailas-cloud/helpboard/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound           = domain.ErrNotFound
	ErrAlreadyExists      = domain.ErrAlreadyExists
	ErrCollectionNotFound = domain.ErrCollectionNotFound
	ErrListingNotFound    = domain.ErrListingNotFound
	ErrInvalidListing     = domain.ErrInvalidListing
	ErrInvalidQuery       = domain.ErrInvalidQuery
	ErrSourceUnavailable  = domain.ErrSourceUnavailable
	ErrReadOnly           = domain.ErrReadOnly
)
