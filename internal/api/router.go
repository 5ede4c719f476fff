// Package api serves the directory over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sells-group/geodir/internal/query"
)

// Options configures the router's middleware.
type Options struct {
	AllowedOrigins []string
	// RateLimit is requests per second across all clients; 0 disables limiting.
	RateLimit float64
	Burst     int
}

// NewRouter wires the directory routes over svc.
func NewRouter(svc *query.Service, opts Options) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Origin", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         86400,
	}))
	if opts.RateLimit > 0 {
		r.Use(rateLimit(opts.RateLimit, opts.Burst))
	}

	h := &handler{svc: svc}

	r.Get("/health", h.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/states", route("Error fetching states", h.states))
		r.Get("/districts/{state}", route("Error fetching districts", h.districts))
		r.Get("/subdistricts/{state}/{district}", route("Error fetching sub-districts", h.subDistricts))
		r.Get("/villages/{state}/{district}/{subdistrict}", route("Error fetching villages", h.villages))
		r.Get("/search", route("Error performing search", h.search))
	})

	// A known path with an unsupported method is just another unknown route.
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}
