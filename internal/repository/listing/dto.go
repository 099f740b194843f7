package listing

import (
	"time"

	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	domlisting "github.com/kailas-cloud/helpboard/internal/domain/listing"
)

// listingDTO is the JSON value stored under a listing key.
type listingDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Type        string     `json:"type"`
	Urgency     string     `json:"urgency,omitempty"`
	Status      string     `json:"status,omitempty"`
	AccountType string     `json:"account_type,omitempty"`
	Location    *geo.Point `json:"location,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Featured    bool       `json:"featured,omitempty"`
	Region      string     `json:"region,omitempty"`
	AuthorID    string     `json:"author_id,omitempty"`
}

func toDTO(l *domlisting.Listing) listingDTO {
	d := listingDTO{
		ID:          l.ID(),
		Title:       l.Title(),
		Description: l.Description(),
		Category:    string(l.Category()),
		Type:        string(l.Kind()),
		Urgency:     string(l.Urgency()),
		Status:      string(l.Status()),
		AccountType: string(l.AccountType()),
		CreatedAt:   l.CreatedAt(),
		Featured:    l.Featured(),
		Region:      l.Region(),
		AuthorID:    l.AuthorID(),
	}
	if p, ok := l.Location(); ok {
		d.Location = &p
	}
	return d
}

func (d *listingDTO) toDomain() domlisting.Listing {
	return domlisting.Reconstruct(domlisting.Params{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    domlisting.Category(d.Category),
		Kind:        domlisting.Kind(d.Type),
		Urgency:     domlisting.Urgency(d.Urgency),
		Status:      domlisting.Status(d.Status),
		AccountType: domlisting.AccountType(d.AccountType),
		Location:    d.Location,
		CreatedAt:   d.CreatedAt,
		Featured:    d.Featured,
		Region:      d.Region,
		AuthorID:    d.AuthorID,
	})
}
