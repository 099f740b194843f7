package query

import (
	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/facet"
)

// Params carries the raw, possibly partial, descriptor fields.
// Empty facet values mean facet.All; nil toggles mean true.
type Params struct {
	Term         string
	Category     string
	Type         string
	Urgency      string
	Status       string
	ShowPersonal *bool
	ShowBusiness *bool
	Bound        geo.Bound
}

// Query is an immutable search descriptor.
type Query struct {
	term         string
	category     string
	kind         string
	urgency      string
	status       string
	showPersonal bool
	showBusiness bool
	bound        geo.Bound
}

// New normalizes params into a Query. It never fails: a malformed bound is
// kept as-is and matches nothing at search time. The term is kept verbatim;
// only "" matches every listing.
func New(p Params) Query {
	return Query{
		term:         p.Term,
		category:     orAll(p.Category),
		kind:         orAll(p.Type),
		urgency:      orAll(p.Urgency),
		status:       orAll(p.Status),
		showPersonal: p.ShowPersonal == nil || *p.ShowPersonal,
		showBusiness: p.ShowBusiness == nil || *p.ShowBusiness,
		bound:        p.Bound,
	}
}

// MatchAll returns the descriptor with every facet set to all, both toggles on and no bound.
func MatchAll() Query {
	return New(Params{})
}

func orAll(v string) string {
	if v == "" {
		return facet.All
	}
	return v
}

// Term returns the free-text term (possibly empty).
func (q Query) Term() string { return q.term }

// Category returns the selected category or facet.All.
func (q Query) Category() string { return q.category }

// Type returns the selected type tag or facet.All.
func (q Query) Type() string { return q.kind }

// Urgency returns the selected urgency or facet.All.
func (q Query) Urgency() string { return q.urgency }

// Status returns the selected status or facet.All.
func (q Query) Status() string { return q.status }

// ShowPersonal reports whether personal accounts are visible.
func (q Query) ShowPersonal() bool { return q.showPersonal }

// ShowBusiness reports whether company accounts are visible.
func (q Query) ShowBusiness() bool { return q.showBusiness }

// Bound returns the geographic bound and whether one was requested.
func (q Query) Bound() (geo.Bound, bool) { return q.bound, q.bound != nil }

// Value returns the selected value for a single-valued facet.
// The account type facet has no single value and reports facet.All
// only when both toggles are on.
func (q Query) Value(f facet.Facet) string {
	switch f {
	case facet.Category:
		return q.category
	case facet.Type:
		return q.kind
	case facet.Urgency:
		return q.urgency
	case facet.Status:
		return q.status
	case facet.AccountType:
		switch {
		case q.showPersonal && q.showBusiness:
			return facet.All
		case q.showPersonal:
			return string(listing.Personal)
		case q.showBusiness:
			return string(listing.Company)
		default:
			return ""
		}
	}
	return facet.All
}

// Without returns a copy with facet f floated to all.
func (q Query) Without(f facet.Facet) Query {
	switch f {
	case facet.Category:
		q.category = facet.All
	case facet.Type:
		q.kind = facet.All
	case facet.Urgency:
		q.urgency = facet.All
	case facet.Status:
		q.status = facet.All
	case facet.AccountType:
		q.showPersonal, q.showBusiness = true, true
	}
	return q
}

// IsMatchAll reports whether the descriptor filters nothing.
func (q Query) IsMatchAll() bool {
	return q.term == "" &&
		q.category == facet.All && q.kind == facet.All &&
		q.urgency == facet.All && q.status == facet.All &&
		q.showPersonal && q.showBusiness && q.bound == nil
}
