package chi

import (
	"time"

	"github.com/kailas-cloud/helpboard/internal/domain/geo"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/domain/search/facet"
	"github.com/kailas-cloud/helpboard/internal/domain/search/query"
	"github.com/kailas-cloud/helpboard/internal/domain/wizard"
	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
)

// NearRequest is a proximity bound.
type NearRequest struct {
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	RadiusKm float64 `json:"radius_km"`
}

// Viewport is a latitude/longitude rectangle.
type Viewport struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// SearchRequest is the body of POST /collections/{collection}/search.
type SearchRequest struct {
	Query        string       `json:"query"`
	Category     string       `json:"category"`
	Type         string       `json:"type"`
	Urgency      string       `json:"urgency"`
	Status       string       `json:"status"`
	ShowPersonal *bool        `json:"show_personal"`
	ShowBusiness *bool        `json:"show_business"`
	Near         *NearRequest `json:"near"`
	Viewport     *Viewport    `json:"viewport"`
	Sort         string       `json:"sort"`
	Cursor       string       `json:"cursor"`
	Limit        int          `json:"limit"`
}

// SearchResponse is one page of matches with facet counts.
type SearchResponse struct {
	Items      []ListingResponse `json:"items"`
	Total      int               `json:"total"`
	Facets     facet.Counts      `json:"facets"`
	NextCursor string            `json:"next_cursor,omitempty"`
	HasMore    bool              `json:"has_more"`
	MapBounds  *Viewport         `json:"map_bounds,omitempty"`
}

// ListingRequest is the body of listing create and upsert.
type ListingRequest struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category,omitempty"`
	Type        string     `json:"type"`
	Urgency     string     `json:"urgency,omitempty"`
	Status      string     `json:"status,omitempty"`
	Location    *geo.Point `json:"location,omitempty"`
	AccountType string     `json:"account_type,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Featured    bool       `json:"featured,omitempty"`
	Region      string     `json:"region,omitempty"`
	AuthorID    string     `json:"author_id,omitempty"`
}

// ListingResponse is a listing on the wire.
type ListingResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category,omitempty"`
	Type        string     `json:"type"`
	Urgency     string     `json:"urgency,omitempty"`
	Status      string     `json:"status,omitempty"`
	Location    *geo.Point `json:"location,omitempty"`
	AccountType string     `json:"account_type,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	Featured    bool       `json:"featured"`
	Region      string     `json:"region,omitempty"`
	AuthorID    string     `json:"author_id,omitempty"`
}

// WizardRequest carries the current step and the form collected so far.
type WizardRequest struct {
	State string            `json:"state"`
	Form  map[string]string `json:"form"`
}

// WizardResponse is the resulting step.
type WizardResponse struct {
	Flow  string `json:"flow"`
	State string `json:"state"`
	Step  int    `json:"step,omitempty"`
	Total int    `json:"total,omitempty"`
	Done  bool   `json:"done"`
	Exit  bool   `json:"exit"`
}

// CategoryResponse is one entry of the category enumeration.
type CategoryResponse struct {
	Name           string `json:"name"`
	TranslationKey string `json:"translation_key"`
}

// HealthResponse is the aggregated health report.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (r *SearchRequest) toQuery() query.Query {
	p := query.Params{
		Term:         r.Query,
		Category:     r.Category,
		Type:         r.Type,
		Urgency:      r.Urgency,
		Status:       r.Status,
		ShowPersonal: r.ShowPersonal,
		ShowBusiness: r.ShowBusiness,
	}
	switch {
	case r.Near != nil:
		p.Bound = geo.Circle{Center: geo.Point{Lat: r.Near.Lat, Lon: r.Near.Lng}, RadiusKm: r.Near.RadiusKm}
	case r.Viewport != nil:
		p.Bound = geo.Rect{
			MinLat: r.Viewport.MinLat, MinLon: r.Viewport.MinLng,
			MaxLat: r.Viewport.MaxLat, MaxLon: r.Viewport.MaxLng,
		}
	}
	return query.New(p)
}

func (r *SearchRequest) options() discoveryuc.Options {
	return discoveryuc.Options{
		Sort:   discoveryuc.Sort(r.Sort),
		Cursor: r.Cursor,
		Limit:  r.Limit,
	}
}

func pageToResponse(p *discoveryuc.Page) SearchResponse {
	items := make([]ListingResponse, len(p.Items))
	for i := range p.Items {
		items[i] = listingToResponse(&p.Items[i])
	}
	resp := SearchResponse{
		Items:      items,
		Total:      p.Total,
		Facets:     p.Counts,
		NextCursor: p.NextCursor,
		HasMore:    p.HasMore,
	}
	if p.MapBounds != nil {
		resp.MapBounds = &Viewport{
			MinLat: p.MapBounds.MinLat, MinLng: p.MapBounds.MinLon,
			MaxLat: p.MapBounds.MaxLat, MaxLng: p.MapBounds.MaxLon,
		}
	}
	return resp
}

func (r *ListingRequest) toParams() listing.Params {
	p := listing.Params{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    listing.Category(r.Category),
		Kind:        listing.Kind(r.Type),
		Urgency:     listing.Urgency(r.Urgency),
		Status:      listing.Status(r.Status),
		Location:    r.Location,
		AccountType: listing.AccountType(r.AccountType),
		Featured:    r.Featured,
		Region:      r.Region,
		AuthorID:    r.AuthorID,
	}
	if r.CreatedAt != nil {
		p.CreatedAt = r.CreatedAt.UTC()
	}
	return p
}

func listingToResponse(l *listing.Listing) ListingResponse {
	resp := ListingResponse{
		ID:          l.ID(),
		Title:       l.Title(),
		Description: l.Description(),
		Category:    string(l.Category()),
		Type:        string(l.Kind()),
		Urgency:     string(l.Urgency()),
		Status:      string(l.Status()),
		AccountType: string(l.AccountType()),
		Featured:    l.Featured(),
		Region:      l.Region(),
		AuthorID:    l.AuthorID(),
	}
	if pt, ok := l.Location(); ok {
		resp.Location = &pt
	}
	if t := l.CreatedAt(); !t.IsZero() {
		resp.CreatedAt = &t
	}
	return resp
}

func wizardResponse(f wizard.Flow, s wizard.State) WizardResponse {
	resp := WizardResponse{Flow: string(f), State: string(s), Done: s == wizard.Done, Exit: s == wizard.Exit}
	if step, total, err := wizard.Progress(f, s); err == nil {
		resp.Step, resp.Total = step, total
	}
	return resp
}
