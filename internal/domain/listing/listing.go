package listing

import (
	"fmt"
	"regexp"
	"time"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/geo"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Limits on free-text fields.
const (
	MaxIDLength          = 256
	MaxTitleLength       = 200
	MaxDescriptionLength = 16384
)

// Params carries the raw fields of a listing.
// Optional fields use their zero value for "absent".
type Params struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Kind        Kind
	Urgency     Urgency
	Status      Status
	Location    *geo.Point
	AccountType AccountType
	CreatedAt   time.Time
	Featured    bool
	Region      string
	AuthorID    string
}

// Listing is a help post, community item, or user-with-location record
// (immutable value object).
type Listing struct {
	id          string
	title       string
	description string
	category    Category
	kind        Kind
	urgency     Urgency
	status      Status
	location    *geo.Point
	accountType AccountType
	createdAt   time.Time
	featured    bool
	region      string
	authorID    string
}

// New validates and creates a Listing.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Title is required. Kind must be
// enumerated. Category (absent on community items), urgency, status, account
// type and location are optional but must be valid when present.
func New(p Params) (Listing, error) {
	switch {
	case p.ID == "":
		return Listing{}, domain.NewValidationError("id", "is required")
	case len(p.ID) > MaxIDLength:
		return Listing{}, domain.NewValidationError("id", fmt.Sprintf("too long (max %d)", MaxIDLength))
	case !idRegex.MatchString(p.ID):
		return Listing{}, domain.NewValidationError("id", "must be alphanumeric with underscores and hyphens")
	}
	if p.Title == "" {
		return Listing{}, domain.NewValidationError("title", "is required")
	}
	if len(p.Title) > MaxTitleLength {
		return Listing{}, domain.NewValidationError("title", fmt.Sprintf("too long (max %d)", MaxTitleLength))
	}
	if len(p.Description) > MaxDescriptionLength {
		return Listing{}, domain.NewValidationError("description",
			fmt.Sprintf("too long (max %d)", MaxDescriptionLength))
	}
	if p.Category != "" && !p.Category.IsValid() {
		return Listing{}, domain.NewValidationError("category", fmt.Sprintf("unknown category %q", p.Category))
	}
	if !p.Kind.IsValid() {
		return Listing{}, domain.NewValidationError("type", fmt.Sprintf("unknown type %q", p.Kind))
	}
	if p.Urgency != "" && !p.Urgency.IsValid() {
		return Listing{}, domain.NewValidationError("urgency", fmt.Sprintf("unknown urgency %q", p.Urgency))
	}
	if p.Status != "" && !p.Status.IsValid() {
		return Listing{}, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", p.Status))
	}
	if p.AccountType != "" && !p.AccountType.IsValid() {
		return Listing{}, domain.NewValidationError("account_type",
			fmt.Sprintf("unknown account type %q", p.AccountType))
	}
	if p.Location != nil && !p.Location.Valid() {
		return Listing{}, domain.NewValidationError("location", "coordinates out of range")
	}
	return Reconstruct(p), nil
}

// Reconstruct creates a Listing without validation (storage hydration).
func Reconstruct(p Params) Listing {
	var loc *geo.Point
	if p.Location != nil {
		pt := *p.Location
		loc = &pt
	}
	return Listing{
		id: p.ID, title: p.Title, description: p.Description,
		category: p.Category, kind: p.Kind, urgency: p.Urgency, status: p.Status,
		location: loc, accountType: p.AccountType, createdAt: p.CreatedAt,
		featured: p.Featured, region: p.Region, authorID: p.AuthorID,
	}
}

// ID returns the listing identifier.
func (l *Listing) ID() string { return l.id }

// Title returns the listing title.
func (l *Listing) Title() string { return l.title }

// Description returns the description (help posts) or content (community items).
func (l *Listing) Description() string { return l.description }

// Category returns the listing category.
func (l *Listing) Category() Category { return l.category }

// Kind returns the listing type tag.
func (l *Listing) Kind() Kind { return l.kind }

// Urgency returns the urgency, empty when absent.
func (l *Listing) Urgency() Urgency { return l.urgency }

// Status returns the status, empty when absent.
func (l *Listing) Status() Status { return l.status }

// Location returns a copy of the coordinates and whether they are present.
func (l *Listing) Location() (geo.Point, bool) {
	if l.location == nil {
		return geo.Point{}, false
	}
	return *l.location, true
}

// AccountType returns the account type, empty for listings that are not users.
func (l *Listing) AccountType() AccountType { return l.accountType }

// CreatedAt returns the creation timestamp.
func (l *Listing) CreatedAt() time.Time { return l.createdAt }

// Featured reports whether the listing is featured.
func (l *Listing) Featured() bool { return l.featured }

// Region returns the administrative region label.
func (l *Listing) Region() string { return l.region }

// AuthorID returns the author or owning user identifier.
func (l *Listing) AuthorID() string { return l.authorID }

// Params returns the raw fields, suitable for building a modified copy.
func (l *Listing) Params() Params {
	p := Params{
		ID: l.id, Title: l.title, Description: l.description,
		Category: l.category, Kind: l.kind, Urgency: l.urgency, Status: l.status,
		AccountType: l.accountType, CreatedAt: l.createdAt, Featured: l.featured,
		Region: l.region, AuthorID: l.authorID,
	}
	if l.location != nil {
		pt := *l.location
		p.Location = &pt
	}
	return p
}
