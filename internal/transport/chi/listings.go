package chi

import (
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
)

// CreateListing handles POST /collections/{collection}/listings.
func (s *Server) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req ListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	l, err := s.listings.Create(r.Context(), chirouter.URLParam(r, "collection"), req.toParams())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, listingToResponse(&l))
}

// UpsertListing handles PUT /collections/{collection}/listings/{id}.
// The path ID wins over any ID in the body.
func (s *Server) UpsertListing(w http.ResponseWriter, r *http.Request) {
	var req ListingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chirouter.URLParam(r, "id")
	l, created, err := s.listings.Upsert(r.Context(), chirouter.URLParam(r, "collection"), req.toParams())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, listingToResponse(&l))
}

// GetListing handles GET /collections/{collection}/listings/{id}.
func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	l, err := s.listings.Get(r.Context(), chirouter.URLParam(r, "collection"), chirouter.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listingToResponse(&l))
}

// DeleteListing handles DELETE /collections/{collection}/listings/{id}.
func (s *Server) DeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.listings.Delete(r.Context(), chirouter.URLParam(r, "collection"), chirouter.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListListings handles GET /collections/{collection}/listings.
func (s *Server) ListListings(w http.ResponseWriter, r *http.Request) {
	ls, err := s.listings.List(r.Context(), chirouter.URLParam(r, "collection"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	items := make([]ListingResponse, len(ls))
	for i := range ls {
		items[i] = listingToResponse(&ls[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
