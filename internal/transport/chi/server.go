// Package chi exposes the helpboard use cases over HTTP with a chi router.
package chi

import (
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/helpboard/internal/domain"
	"github.com/kailas-cloud/helpboard/internal/domain/listing"
	"github.com/kailas-cloud/helpboard/internal/logger"
	discoveryuc "github.com/kailas-cloud/helpboard/internal/usecase/discovery"
	healthuc "github.com/kailas-cloud/helpboard/internal/usecase/health"
	listinguc "github.com/kailas-cloud/helpboard/internal/usecase/listing"
	sessionuc "github.com/kailas-cloud/helpboard/internal/usecase/session"
)

// APIPrefix is the mount point of the versioned API.
const APIPrefix = "/api/v1"

// Server holds the HTTP handlers.
type Server struct {
	discovery     *discoveryuc.Service
	listings      *listinguc.Service
	sessions      *sessionuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server. listings may be nil when no
// listing store is configured; its routes then answer 503.
func NewServer(
	discovery *discoveryuc.Service,
	listings *listinguc.Service,
	sessions *sessionuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		discovery:     discovery,
		listings:      listings,
		sessions:      sessions,
		health:        health,
		logger:        logger,
		errorHandlers: defaultErrorHandlers(),
	}
}

// Register mounts every route on r.
func (s *Server) Register(r chirouter.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route(APIPrefix, func(r chirouter.Router) {
		r.Get("/categories", s.ListCategories)

		r.Route("/collections/{collection}", func(r chirouter.Router) {
			r.Use(logParam("collection", "collection"))
			r.Post("/search", s.SearchPost)
			r.Get("/search", s.SearchGet)

			r.Group(func(r chirouter.Router) {
				r.Use(s.requireListings)
				r.Post("/listings", s.CreateListing)
				r.Get("/listings", s.ListListings)
				r.Put("/listings/{id}", s.UpsertListing)
				r.Get("/listings/{id}", s.GetListing)
				r.Delete("/listings/{id}", s.DeleteListing)
			})
		})

		r.Route("/sessions/{session}", func(r chirouter.Router) {
			r.Use(logParam("session", "session_id"))
			r.Get("/", s.GetSession)
			r.Put("/language", s.SetLanguage)
			r.Put("/online", s.SetOnline)
			r.Put("/user", s.SignIn)
			r.Delete("/user", s.SignOut)
			r.Post("/notifications", s.AddNotification)
			r.Delete("/notifications", s.ClearNotifications)
			r.Post("/notifications/{notification}/read", s.MarkNotificationRead)
		})

		r.Route("/wizards/{flow}", func(r chirouter.Router) {
			r.Use(logParam("flow", "flow"))
			r.Post("/start", s.WizardStart)
			r.Post("/next", s.WizardNext)
			r.Post("/back", s.WizardBack)
		})
	})
}

// Handler returns a router with every route mounted.
func (s *Server) Handler() http.Handler {
	r := chirouter.NewRouter()
	s.Register(r)
	return r
}

// logParam attaches a URL parameter to the request logger.
func logParam(param, field string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.With(r.Context(), zap.String(field, chirouter.URLParam(r, param)))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (s *Server) requireListings(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.listings == nil {
			s.handleDomainError(w, r, domain.ErrReadOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	cats := listing.Categories()
	out := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		out[i] = CategoryResponse{Name: string(c), TranslationKey: c.TranslationKey()}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out})
}
