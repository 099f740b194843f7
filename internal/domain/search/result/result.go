package result

import (
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/facet"
)

// ResultSet is the ordered set of matching listings plus facet counts.
// The zero value is the empty result.
type ResultSet struct {
	items  []listing.Listing
	counts facet.Counts
}

// New creates a result set. A nil counts map is replaced by empty counts.
func New(items []listing.Listing, counts facet.Counts) ResultSet {
	if counts == nil {
		counts = facet.NewCounts()
	}
	return ResultSet{items: items, counts: counts}
}

// Empty returns a result with no items and all-zero counts.
func Empty() ResultSet {
	return New(nil, nil)
}

// Items returns matching listings in input order.
func (r *ResultSet) Items() []listing.Listing { return r.items }

// Counts returns facet counts computed with each facet floated to all.
func (r *ResultSet) Counts() facet.Counts {
	if r.counts == nil {
		return facet.NewCounts()
	}
	return r.counts
}

// Total returns the number of matching listings.
func (r *ResultSet) Total() int { return len(r.items) }

// IsEmpty reports whether nothing matched.
func (r *ResultSet) IsEmpty() bool { return len(r.items) == 0 }

// IDs returns the identifiers of the matching listings in order.
func (r *ResultSet) IDs() []string {
	ids := make([]string, len(r.items))
	for i := range r.items {
		ids[i] = r.items[i].ID()
	}
	return ids
}
