package discovery

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/collection"
	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/facet"
	"github.com/kailas-cloud/helpboard/internal/domain/search/query"
	"github.com/kailas-cloud/helpboard/internal/logger"
	"github.com/kailas-cloud/helpboard/internal/metrics"
)

// Pagination and map defaults.
const (
	DefaultLimit      = 20
	MaxLimit          = 100
	DefaultMapPadding = 0.1
)

// Sort is the optional pre-sort applied before filtering.
type Sort string

const (
	// SortNone keeps the source order.
	SortNone Sort = "none"
	// SortNewest orders by creation time, newest first.
	SortNewest Sort = "newest"
	// SortFeatured moves featured listings first.
	SortFeatured Sort = "featured"
)

// IsValid checks if the sort is supported. Empty means SortNone.
func (s Sort) IsValid() bool {
	return s == "" || s == SortNone || s == SortNewest || s == SortFeatured
}

// Options controls ordering and pagination of a search.
type Options struct {
	Sort   Sort
	Cursor string
	Limit  int
}

// Page is one page of a discovery search.
type Page struct {
	Items      []listing.Listing
	Total      int
	Counts     facet.Counts
	NextCursor string
	HasMore    bool
	// MapBounds covers every matched listing with coordinates, nil when none have any.
	MapBounds *geo.Rect
}

// Config tunes the service. Zero fields take the package defaults.
type Config struct {
	DefaultLimit int
	MaxLimit     int
	MapPadding   float64
}

// Service runs discovery searches over listing collections.
type Service struct {
	source Source
	engine *Engine
	cfg    Config
}

// New creates a discovery service. A nil engine uses the default one.
func New(source Source, engine *Engine, cfg Config) *Service {
	if engine == nil {
		engine = defaultEngine
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = MaxLimit
	}
	if cfg.DefaultLimit > cfg.MaxLimit {
		cfg.DefaultLimit = cfg.MaxLimit
	}
	if cfg.MapPadding <= 0 {
		cfg.MapPadding = DefaultMapPadding
	}
	return &Service{source: source, engine: engine, cfg: cfg}
}

// Search loads the collection, pre-sorts it, runs the engine and returns one page.
func (s *Service) Search(ctx context.Context, name string, q query.Query, opts Options) (Page, error) {
	col, err := collection.Parse(name)
	if err != nil {
		return Page{}, err
	}
	offset, limit, err := s.window(opts)
	if err != nil {
		metrics.DiscoverySearchesTotal.WithLabelValues(string(col), "invalid").Inc()
		return Page{}, err
	}

	listings, err := s.source.Listings(ctx, col)
	if err != nil {
		metrics.DiscoverySearchesTotal.WithLabelValues(string(col), "error").Inc()
		return Page{}, fmt.Errorf("%w: load %s: %w", domain.ErrSourceUnavailable, col, err)
	}
	metrics.SourceListings.WithLabelValues(string(col)).Set(float64(len(listings)))

	ordered := presort(listings, opts.Sort)

	start := time.Now()
	rs := s.engine.Search(ordered, q)
	elapsed := time.Since(start)

	metrics.DiscoverySearchDuration.WithLabelValues(string(col)).Observe(elapsed.Seconds())
	metrics.DiscoveryResultItems.WithLabelValues(string(col)).Observe(float64(rs.Total()))
	metrics.DiscoverySearchesTotal.WithLabelValues(string(col), "ok").Inc()

	items := rs.Items()
	page := Page{
		Total:     rs.Total(),
		Counts:    rs.Counts(),
		MapBounds: s.mapBounds(items),
	}
	if offset < len(items) {
		end := min(offset+limit, len(items))
		page.Items = items[offset:end]
		if end < len(items) {
			page.HasMore = true
			page.NextCursor = strconv.Itoa(end)
		}
	}

	logger.FromContext(ctx).Debug("Discovery search",
		zap.String("collection", string(col)),
		zap.Bool("has_term", q.Term() != ""),
		zap.Int("source_listings", len(listings)),
		zap.Int("total", page.Total),
		zap.Int("offset", offset),
		zap.Int("limit", limit),
		zap.Duration("engine_duration", elapsed),
	)
	return page, nil
}

// window resolves the cursor and limit into an offset and page size.
func (s *Service) window(opts Options) (offset, limit int, err error) {
	if !opts.Sort.IsValid() {
		return 0, 0, fmt.Errorf("%w: unknown sort %q", domain.ErrInvalidQuery, opts.Sort)
	}
	switch {
	case opts.Limit < 0:
		return 0, 0, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidQuery)
	case opts.Limit == 0:
		limit = s.cfg.DefaultLimit
	default:
		limit = min(opts.Limit, s.cfg.MaxLimit)
	}
	if opts.Cursor != "" {
		offset, err = strconv.Atoi(opts.Cursor)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("%w: malformed cursor", domain.ErrInvalidQuery)
		}
	}
	return offset, limit, nil
}

func (s *Service) mapBounds(items []listing.Listing) *geo.Rect {
	var pts []geo.Point
	for i := range items {
		if p, ok := items[i].Location(); ok {
			pts = append(pts, p)
		}
	}
	r, ok := geo.FitBounds(pts, s.cfg.MapPadding)
	if !ok {
		return nil
	}
	return &r
}

// presort returns a stably reordered copy; SortNone returns the input untouched.
func presort(in []listing.Listing, by Sort) []listing.Listing {
	switch by {
	case SortNewest:
		out := slices.Clone(in)
		slices.SortStableFunc(out, func(a, b listing.Listing) int {
			return b.CreatedAt().Compare(a.CreatedAt())
		})
		return out
	case SortFeatured:
		out := slices.Clone(in)
		slices.SortStableFunc(out, func(a, b listing.Listing) int {
			return cmp.Compare(rank(b.Featured()), rank(a.Featured()))
		})
		return out
	default:
		return in
	}
}

func rank(featured bool) int {
	if featured {
		return 1
	}
	return 0
}
