package helpboard

import (
	"context"
	"fmt"
	"time"

	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
)

// Sort is the optional pre-sort applied before filtering.
type Sort = discoveryuc.Sort

// Sorts.
const (
	SortNone     = discoveryuc.SortNone
	SortNewest   = discoveryuc.SortNewest
	SortFeatured = discoveryuc.SortFeatured
)

// SearchOptions controls ordering and pagination.
type SearchOptions struct {
	Sort   Sort
	Cursor string // from Page.NextCursor
	Limit  int    // 0 = default page size
}

// Page is one page of results.
type Page struct {
	Items      []Listing
	Total      int
	Counts     Counts
	NextCursor string
	HasMore    bool
	MapBounds  *Rect // nil when no match has coordinates
}

// Search runs a query over a collection.
func (c *Client) Search(ctx context.Context, col Collection, q Query, opts SearchOptions) (_ Page, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", col, start, err) }()

	p, err := c.discoverySvc.Search(ctx, string(col), q, discoveryuc.Options{
		Sort: opts.Sort, Cursor: opts.Cursor, Limit: opts.Limit,
	})
	if err != nil {
		return Page{}, fmt.Errorf("search %s: %w", col, err)
	}
	return Page{
		Items:      p.Items,
		Total:      p.Total,
		Counts:     p.Counts,
		NextCursor: p.NextCursor,
		HasMore:    p.HasMore,
		MapBounds:  p.MapBounds,
	}, nil
}
