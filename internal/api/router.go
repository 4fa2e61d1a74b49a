package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

const (
	globalRateLimit  = 120
	contactRateLimit = 5
)

// NewRouter builds the chi router with all routes configured.
// Everything is public except the cache admin route, which requires bearer auth
// and is only mounted when adminToken is set. Requests are rate limited per IP,
// with a stricter limit on contact submissions.
func NewRouter(handlers *Handlers, adminToken string, db, redis Pinger, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(httprate.LimitByIP(globalRateLimit, time.Minute))

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandlerFunc(db, redis, log))

		r.Get("/home", handlers.Home)
		r.Get("/about", handlers.About)

		r.Get("/destinations", handlers.ListDestinations)
		r.Get("/destinations/{id}", handlers.GetDestination)
		r.Get("/agencies", handlers.ListAgencies)
		r.Get("/agencies/{id}", handlers.GetAgency)

		r.With(httprate.LimitByIP(contactRateLimit, time.Minute)).
			Post("/contact", handlers.SubmitContact)

		if adminToken != "" {
			r.Group(func(r chi.Router) {
				r.Use(BearerAuth(adminToken))
				r.Delete("/admin/cache", handlers.FlushCache)
			})
		}
	})

	return r
}

// Ensure chi.Mux implements http.Handler.
var _ http.Handler = (*chi.Mux)(nil)
