package helpboard

import (
	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
)

// Search runs the discovery engine over an in-memory slice.
// Order is preserved; the input is never modified.
func Search(listings []Listing, q Query) ResultSet {
	return discoveryuc.Search(listings, q)
}

// Match reports whether a single listing satisfies q.
func Match(l Listing, q Query) bool {
	return discoveryuc.Match(l, q)
}

// DefaultCenter is the map center used when no location is known.
var DefaultCenter = geo.DefaultCenter

// DiscoverBuilder is a fluent builder for in-memory searches.
type DiscoverBuilder struct {
	listings []Listing
	p        QueryParams

	// Circle parameters, committed on Do.
	near     *Point
	radiusKm float64
}

// Discover starts a search over listings.
func Discover(listings []Listing) *DiscoverBuilder {
	return &DiscoverBuilder{listings: listings}
}

// Term sets the free-text term.
func (b *DiscoverBuilder) Term(t string) *DiscoverBuilder {
	b.p.Term = t
	return b
}

// Category filters by category.
func (b *DiscoverBuilder) Category(c Category) *DiscoverBuilder {
	b.p.Category = string(c)
	return b
}

// Type filters by listing kind.
func (b *DiscoverBuilder) Type(k Kind) *DiscoverBuilder {
	b.p.Type = string(k)
	return b
}

// Urgency filters by urgency.
func (b *DiscoverBuilder) Urgency(u Urgency) *DiscoverBuilder {
	b.p.Urgency = string(u)
	return b
}

// Status filters by status.
func (b *DiscoverBuilder) Status(s Status) *DiscoverBuilder {
	b.p.Status = string(s)
	return b
}

// HidePersonal drops listings posted by personal accounts.
func (b *DiscoverBuilder) HidePersonal() *DiscoverBuilder {
	b.p.ShowPersonal = ptr(false)
	return b
}

// HideBusiness drops listings posted by company accounts.
func (b *DiscoverBuilder) HideBusiness() *DiscoverBuilder {
	b.p.ShowBusiness = ptr(false)
	return b
}

// Near sets the center of a circular bound. Use Km for the radius.
func (b *DiscoverBuilder) Near(lat, lon float64) *DiscoverBuilder {
	b.near = &Point{Lat: lat, Lon: lon}
	b.p.Bound = nil
	return b
}

// Km sets the radius of the circle started by Near.
func (b *DiscoverBuilder) Km(radius float64) *DiscoverBuilder {
	b.radiusKm = radius
	return b
}

// Within restricts results to a rectangle. It replaces any Near bound.
func (b *DiscoverBuilder) Within(r Rect) *DiscoverBuilder {
	b.near = nil
	b.p.Bound = r
	return b
}

// Query returns the query built so far.
func (b *DiscoverBuilder) Query() Query {
	p := b.p
	if b.near != nil {
		p.Bound = Circle{Center: *b.near, RadiusKm: b.radiusKm}
	}
	return NewQuery(p)
}

// Do executes the search.
func (b *DiscoverBuilder) Do() ResultSet {
	return Search(b.listings, b.Query())
}

func ptr[T any](v T) *T { return &v }

// Distance returns the great-circle distance between two points in meters.
func Distance(a, b Point) float64 { return geo.Distance(a, b) }
