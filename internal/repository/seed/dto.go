package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
)

// seedFile is the JSONC document: one array per collection.
type seedFile struct {
	Posts     []postDTO      `json:"posts"`
	Community []communityDTO `json:"community"`
	Helpers   []helperDTO    `json:"helpers"`
}

type coordinatesDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type locationDTO struct {
	Region      string          `json:"region"`
	Commune     string          `json:"commune,omitempty"`
	Coordinates *coordinatesDTO `json:"coordinates,omitempty"`
}

type postDTO struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    locationDTO `json:"location"`
	Status      string      `json:"status"`
	Urgency     string      `json:"urgency"`
	AccountType string      `json:"accountType,omitempty"`
	CreatedAt   string      `json:"createdAt"`
	Featured    bool        `json:"featured,omitempty"`
}

type communityDTO struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"createdAt"`
	Featured  bool   `json:"featured"`
}

type helperDTO struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	BusinessName string          `json:"businessName,omitempty"`
	AccountType  string          `json:"accountType"`
	Region       string          `json:"region"`
	Coordinates  *coordinatesDTO `json:"coordinates,omitempty"`
	Skills       []string        `json:"skills,omitempty"`
	Services     []string        `json:"services,omitempty"`
	CreatedAt    string          `json:"createdAt"`
}

func (d *postDTO) toDomain() (listing.Listing, error) {
	created, err := parseTime(d.CreatedAt)
	if err != nil {
		return listing.Listing{}, err
	}
	return listing.New(listing.Params{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    listing.Category(d.Category),
		Kind:        listing.Kind(d.Type),
		Urgency:     listing.Urgency(d.Urgency),
		Status:      listing.Status(d.Status),
		AccountType: listing.AccountType(d.AccountType),
		Location:    d.Location.Coordinates.point(),
		CreatedAt:   created,
		Featured:    d.Featured,
		Region:      d.Location.Region,
		AuthorID:    d.UserID,
	})
}

func (d *communityDTO) toDomain() (listing.Listing, error) {
	created, err := parseTime(d.CreatedAt)
	if err != nil {
		return listing.Listing{}, err
	}
	return listing.New(listing.Params{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Content,
		Kind:        listing.Kind(d.Type),
		CreatedAt:   created,
		Featured:    d.Featured,
		AuthorID:    d.Author,
	})
}

// toDomain maps a helper to a listing: the display name is the title, skills
// form the searchable description and the first service is the category.
func (d *helperDTO) toDomain() (listing.Listing, error) {
	created, err := parseTime(d.CreatedAt)
	if err != nil {
		return listing.Listing{}, err
	}
	title := d.Name
	if listing.AccountType(d.AccountType) == listing.Company && d.BusinessName != "" {
		title = d.BusinessName
	}
	// A listing carries one category, so services after the first are dropped
	// and the map's category filter only sees the primary service.
	var category listing.Category
	if len(d.Services) > 0 {
		category = listing.Category(d.Services[0])
	}
	return listing.New(listing.Params{
		ID:          d.ID,
		Title:       title,
		Description: strings.Join(d.Skills, ", "),
		Category:    category,
		Kind:        listing.HelpOffer,
		AccountType: listing.AccountType(d.AccountType),
		Location:    d.Coordinates.point(),
		CreatedAt:   created,
		Region:      d.Region,
		AuthorID:    d.ID,
	})
}

func (c *coordinatesDTO) point() *geo.Point {
	if c == nil {
		return nil
	}
	return &geo.Point{Lat: c.Lat, Lon: c.Lng}
}

// parseTime accepts any common date layout; empty means unknown.
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("createdAt %q: %w", s, err)
	}
	return t.UTC(), nil
}
