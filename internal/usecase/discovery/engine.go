package discovery

import (
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/facet"
	"github.com/kailas-cloud/helpboard/internal/domain/search/query"
	"github.com/kailas-cloud/helpboard/internal/domain/search/result"
)

// DefaultParallelThreshold is the collection size above which masks are computed concurrently.
const DefaultParallelThreshold = 4096

// mismatch is a bitmask of the predicates a listing fails.
type mismatch uint8

const (
	missText mismatch = 1 << iota
	missCategory
	missType
	missUrgency
	missStatus
	missAccount
	missGeo
)

// facetBits binds every counted facet to its predicate bit and listing value.
var facetBits = []struct {
	facet facet.Facet
	bit   mismatch
	value func(l *listing.Listing) string
}{
	{facet.Category, missCategory, func(l *listing.Listing) string { return string(l.Category()) }},
	{facet.Type, missType, func(l *listing.Listing) string { return string(l.Kind()) }},
	{facet.Urgency, missUrgency, func(l *listing.Listing) string { return string(l.Urgency()) }},
	{facet.Status, missStatus, func(l *listing.Listing) string { return string(l.Status()) }},
	{facet.AccountType, missAccount, func(l *listing.Listing) string { return string(l.AccountType()) }},
}

// Engine evaluates discovery queries over in-memory listings.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	parallelThreshold int
	workers           int
}

// Option configures an Engine.
type Option func(*Engine)

// WithParallelThreshold sets the collection size above which evaluation is split
// across goroutines. Zero or negative disables parallel evaluation.
func WithParallelThreshold(n int) Option {
	return func(e *Engine) { e.parallelThreshold = n }
}

// WithWorkers sets the number of goroutines used for parallel evaluation.
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// NewEngine creates an Engine. Defaults: threshold 4096, GOMAXPROCS workers.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		parallelThreshold: DefaultParallelThreshold,
		workers:           runtime.GOMAXPROCS(0),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Search runs q over listings with the default engine.
func Search(listings []listing.Listing, q query.Query) result.ResultSet {
	return defaultEngine.Search(listings, q)
}

// Match reports whether a single listing satisfies every filter of q.
func Match(l listing.Listing, q query.Query) bool {
	return newMatcher(q).mismatch(&l) == 0
}

// Search returns the listings matching q in input order, plus facet counts.
//
// The count for facet F covers the listings that would match if F alone were
// set to all: a listing contributes to F iff the only predicate it may fail is
// F's own. Listings without a value for F are not counted under F.
func (e *Engine) Search(listings []listing.Listing, q query.Query) result.ResultSet {
	if b, ok := q.Bound(); ok && !b.Valid() {
		return result.Empty()
	}
	if len(listings) == 0 {
		return result.Empty()
	}

	masks := e.evaluate(listings, q)

	var items []listing.Listing
	counts := facet.NewCounts()
	for i := range listings {
		m := masks[i]
		if m == 0 {
			items = append(items, listings[i])
		}
		for _, fb := range facetBits {
			if m&^fb.bit != 0 {
				continue
			}
			if v := fb.value(&listings[i]); v != "" {
				counts.Add(fb.facet, v)
			}
		}
	}
	return result.New(items, counts)
}

// evaluate computes the mismatch mask of every listing, by position.
func (e *Engine) evaluate(listings []listing.Listing, q query.Query) []mismatch {
	masks := make([]mismatch, len(listings))

	if e.parallelThreshold <= 0 || len(listings) < e.parallelThreshold || e.workers < 2 {
		m := newMatcher(q)
		for i := range listings {
			masks[i] = m.mismatch(&listings[i])
		}
		return masks
	}

	chunk := (len(listings) + e.workers - 1) / e.workers
	var g errgroup.Group
	for start := 0; start < len(listings); start += chunk {
		end := min(start+chunk, len(listings))
		g.Go(func() error {
			// cases.Caser keeps internal state, one per goroutine.
			m := newMatcher(q)
			for i := start; i < end; i++ {
				masks[i] = m.mismatch(&listings[i])
			}
			return nil
		})
	}
	_ = g.Wait()
	return masks
}

type matcher struct {
	q        query.Query
	term     string
	fold     cases.Caser
	bound    geo.Bound
	hasBound bool
}

func newMatcher(q query.Query) *matcher {
	m := &matcher{q: q, fold: cases.Fold()}
	if q.Term() != "" {
		m.term = m.fold.String(q.Term())
	}
	m.bound, m.hasBound = q.Bound()
	return m
}

func (m *matcher) mismatch(l *listing.Listing) mismatch {
	var out mismatch
	if m.term != "" && !m.containsTerm(l) {
		out |= missText
	}
	if !facetMatches(m.q.Category(), string(l.Category())) {
		out |= missCategory
	}
	if !facetMatches(m.q.Type(), string(l.Kind())) {
		out |= missType
	}
	if !facetMatches(m.q.Urgency(), string(l.Urgency())) {
		out |= missUrgency
	}
	if !facetMatches(m.q.Status(), string(l.Status())) {
		out |= missStatus
	}
	if !m.accountVisible(l.AccountType()) {
		out |= missAccount
	}
	if m.hasBound {
		p, ok := l.Location()
		if !ok || !m.bound.Contains(p) {
			out |= missGeo
		}
	}
	return out
}

func (m *matcher) containsTerm(l *listing.Listing) bool {
	return strings.Contains(m.fold.String(l.Title()), m.term) ||
		strings.Contains(m.fold.String(l.Description()), m.term)
}

// accountVisible applies the account toggles. Listings without an account
// type (posts, community items) are never hidden by them.
func (m *matcher) accountVisible(a listing.AccountType) bool {
	switch a {
	case listing.Personal:
		return m.q.ShowPersonal()
	case listing.Company:
		return m.q.ShowBusiness()
	default:
		return true
	}
}

// facetMatches compares exactly; an absent listing value never matches a specific filter.
func facetMatches(selected, value string) bool {
	return selected == facet.All || (value != "" && selected == value)
}
