package chi

import (
	"fmt"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/helpboard/internal/domain"
)

// SearchParams are the query-string parameters of GET .../search.
type SearchParams struct {
	Q            *string  `json:"q,omitempty"`
	Category     *string  `json:"category,omitempty"`
	Type         *string  `json:"type,omitempty"`
	Urgency      *string  `json:"urgency,omitempty"`
	Status       *string  `json:"status,omitempty"`
	ShowPersonal *bool    `json:"show_personal,omitempty"`
	ShowBusiness *bool    `json:"show_business,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	RadiusKm     *float64 `json:"radius_km,omitempty"`
	MinLat       *float64 `json:"min_lat,omitempty"`
	MinLng       *float64 `json:"min_lng,omitempty"`
	MaxLat       *float64 `json:"max_lat,omitempty"`
	MaxLng       *float64 `json:"max_lng,omitempty"`
	Sort         *string  `json:"sort,omitempty"`
	Cursor       *string  `json:"cursor,omitempty"`
	Limit        *int     `json:"limit,omitempty"`
}

// SearchPost handles POST /collections/{collection}/search.
func (s *Server) SearchPost(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Near != nil && req.Viewport != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidQuery, "near and viewport are mutually exclusive")
		return
	}
	s.search(w, r, &req)
}

// SearchGet handles GET /collections/{collection}/search.
func (s *Server) SearchGet(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeInvalidQuery, err.Error())
		return
	}
	req, err := params.toRequest()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	s.search(w, r, req)
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, req *SearchRequest) {
	page, err := s.discovery.Search(r.Context(), chirouter.URLParam(r, "collection"), req.toQuery(), req.options())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(&page))
}

func bindSearchParams(r *http.Request) (SearchParams, error) {
	var p SearchParams
	q := r.URL.Query()
	binds := []struct {
		name string
		dest any
	}{
		{"q", &p.Q},
		{"category", &p.Category},
		{"type", &p.Type},
		{"urgency", &p.Urgency},
		{"status", &p.Status},
		{"show_personal", &p.ShowPersonal},
		{"show_business", &p.ShowBusiness},
		{"lat", &p.Lat},
		{"lng", &p.Lng},
		{"radius_km", &p.RadiusKm},
		{"min_lat", &p.MinLat},
		{"min_lng", &p.MinLng},
		{"max_lat", &p.MaxLat},
		{"max_lng", &p.MaxLng},
		{"sort", &p.Sort},
		{"cursor", &p.Cursor},
		{"limit", &p.Limit},
	}
	for _, b := range binds {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return SearchParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return p, nil
}

// toRequest requires a geographic bound to be given completely: a partial
// set of coordinates is a client error rather than a bound matching nothing.
func (p *SearchParams) toRequest() (*SearchRequest, error) {
	req := &SearchRequest{
		Query:        deref(p.Q),
		Category:     deref(p.Category),
		Type:         deref(p.Type),
		Urgency:      deref(p.Urgency),
		Status:       deref(p.Status),
		ShowPersonal: p.ShowPersonal,
		ShowBusiness: p.ShowBusiness,
		Sort:         deref(p.Sort),
		Cursor:       deref(p.Cursor),
		Limit:        deref(p.Limit),
	}

	near := countSet(p.Lat, p.Lng, p.RadiusKm)
	rect := countSet(p.MinLat, p.MinLng, p.MaxLat, p.MaxLng)
	switch {
	case near > 0 && rect > 0:
		return nil, fmt.Errorf("%w: near and viewport are mutually exclusive", domain.ErrInvalidQuery)
	case near == 3:
		req.Near = &NearRequest{Lat: *p.Lat, Lng: *p.Lng, RadiusKm: *p.RadiusKm}
	case near > 0:
		return nil, fmt.Errorf("%w: lat, lng and radius_km must be given together", domain.ErrInvalidQuery)
	case rect == 4:
		req.Viewport = &Viewport{MinLat: *p.MinLat, MinLng: *p.MinLng, MaxLat: *p.MaxLat, MaxLng: *p.MaxLng}
	case rect > 0:
		return nil, fmt.Errorf("%w: min_lat, min_lng, max_lat and max_lng must be given together",
			domain.ErrInvalidQuery)
	}
	return req, nil
}

func countSet(vs ...*float64) int {
	n := 0
	for _, v := range vs {
		if v != nil {
			n++
		}
	}
	return n
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
