package helpboard

import (
	"github.com/kailas-cloud/helpboard/internal/domain/collection"
	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/facet"
	"github.com/kailas-cloud/helpboard/internal/domain/search/query"
	"github.com/kailas-cloud/helpboard/internal/domain/search/result"
)

// Listing types.
type (
	Listing       = listing.Listing
	ListingParams = listing.Params
	Category      = listing.Category
	Kind          = listing.Kind
	Urgency       = listing.Urgency
	Status        = listing.Status
	AccountType   = listing.AccountType
)

// Search types.
type (
	Query       = query.Query
	QueryParams = query.Params
	ResultSet   = result.ResultSet
	Facet       = facet.Facet
	Counts      = facet.Counts
)

// Geographic types.
type (
	Point  = geo.Point
	Bound  = geo.Bound
	Circle = geo.Circle
	Rect   = geo.Rect
)

// Collection names a listing collection.
type Collection = collection.Name

// Collections.
const (
	Posts     = collection.Posts
	Community = collection.Community
	Helpers   = collection.Helpers
)

// All is the facet sentinel matching every value.
const All = facet.All

// Facets.
const (
	FacetCategory    = facet.Category
	FacetType        = facet.Type
	FacetUrgency     = facet.Urgency
	FacetStatus      = facet.Status
	FacetAccountType = facet.AccountType
)

// Kinds.
const (
	HelpRequest   = listing.HelpRequest
	HelpOffer     = listing.HelpOffer
	Sell          = listing.Sell
	Tip           = listing.Tip
	Story         = listing.Story
	ExpertContent = listing.ExpertContent
)

// Categories.
const (
	Farming       = listing.Farming
	Electronics   = listing.Electronics
	Tutoring      = listing.Tutoring
	Health        = listing.Health
	Mechanics     = listing.Mechanics
	Repairs       = listing.Repairs
	Automotive    = listing.Automotive
	Construction  = listing.Construction
	Cooking       = listing.Cooking
	Language      = listing.Language
	AnimalCare    = listing.AnimalCare
	HairSalon     = listing.HairSalon
	EventPlanning = listing.EventPlanning
	TaxServices   = listing.TaxServices
	Other         = listing.Other
)

// Urgencies, statuses and account types.
const (
	Low      = listing.Low
	Medium   = listing.Medium
	High     = listing.High
	Open     = listing.Open
	Solved   = listing.Solved
	Closed   = listing.Closed
	Personal = listing.Personal
	Company  = listing.Company
)

// Categories returns the category enumeration in display order.
func Categories() []Category { return listing.Categories() }

// NewListing validates params and builds a listing.
func NewListing(p ListingParams) (Listing, error) {
	l, err := listing.New(p)
	if err != nil {
		return Listing{}, err //nolint:wrapcheck // domain error
	}
	return l, nil
}

// NewQuery normalizes params into a query. It never fails.
func NewQuery(p QueryParams) Query { return query.New(p) }
