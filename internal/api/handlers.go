package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/neexbeast/explorex/internal/catalog"
	"github.com/neexbeast/explorex/internal/contact"
	"github.com/neexbeast/explorex/internal/listing"
)

const (
	featuredDestinations = 4
	featuredAgencies     = 2
	relatedLimit         = 3
	maxContactBody       = 64 << 10
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	catalog *catalog.Catalog
	cache   ListingCache
	contact ContactSubmitter
	log     *slog.Logger
}

// NewHandlers constructs Handlers. cache may be nil, in which case every
// listing is computed from the catalog.
func NewHandlers(c *catalog.Catalog, cache ListingCache, submitter ContactSubmitter, log *slog.Logger) *Handlers {
	return &Handlers{
		catalog: c,
		cache:   cache,
		contact: submitter,
		log:     log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// notFoundView is the empty state rendered for unknown records and paths.
type notFoundView struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Back    string `json:"back"`
}

type homeResponse struct {
	Name         string                `json:"name"`
	Tagline      string                `json:"tagline"`
	Destinations []catalog.Destination `json:"featured_destinations"`
	Agencies     []catalog.Agency      `json:"featured_agencies"`
	Categories   []string              `json:"categories"`
	Reasons      []catalog.Highlight   `json:"reasons"`
}

type queryView struct {
	Search   string  `json:"q"`
	Category *string `json:"category"`
	Sort     string  `json:"sort"`
}

type destinationListResponse struct {
	listing.Page[catalog.Destination]
	Categories []string  `json:"categories"`
	Query      queryView `json:"query"`
}

type agencyListResponse struct {
	listing.Page[catalog.Agency]
	Query queryView `json:"query"`
}

type destinationDetailResponse struct {
	catalog.Destination
	Related   []catalog.Destination  `json:"related"`
	Itinerary []catalog.ItineraryDay `json:"itinerary"`
}

type agencyDetailResponse struct {
	catalog.Agency
	Headquarters string   `json:"headquarters"`
	Offices      []string `json:"offices"`
}

// Home handles GET /api/v1/home.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	dests, agencies := h.catalog.Featured(featuredDestinations, featuredAgencies)
	about := h.catalog.About()
	writeJSON(w, http.StatusOK, homeResponse{
		Name:         about.Name,
		Tagline:      about.Tagline,
		Destinations: dests,
		Agencies:     agencies,
		Categories:   h.catalog.Categories(),
		Reasons:      about.Reasons,
	})
}

// ListDestinations handles GET /api/v1/destinations.
// Cache hit → return. Miss → run the pipeline, cache, return.
func (h *Handlers) ListDestinations(w http.ResponseWriter, r *http.Request) {
	q, err := destinationQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := h.destinationPage(r.Context(), q)
	writeJSON(w, http.StatusOK, destinationListResponse{
		Page:       page,
		Categories: h.catalog.Categories(),
		Query:      queryView{Search: q.Search, Category: q.Category, Sort: string(q.Sort)},
	})
}

func (h *Handlers) destinationPage(ctx context.Context, q listing.Query) listing.Page[catalog.Destination] {
	if h.cache != nil {
		cached, err := h.cache.GetDestinations(ctx, q)
		if err != nil {
			h.log.Error("cache get failed", "kind", "destinations", "err", err)
		}
		if cached != nil {
			return *cached
		}
	}

	page := listing.Destinations(h.catalog.Destinations(), q)

	if h.cache != nil {
		if err := h.cache.SetDestinations(ctx, q, &page); err != nil {
			h.log.Warn("cache set failed", "kind", "destinations", "err", err)
		}
	}
	return page
}

// ListAgencies handles GET /api/v1/agencies.
func (h *Handlers) ListAgencies(w http.ResponseWriter, r *http.Request) {
	q, err := agencyQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := h.agencyPage(r.Context(), q)
	writeJSON(w, http.StatusOK, agencyListResponse{
		Page:  page,
		Query: queryView{Search: q.Search, Sort: string(q.Sort)},
	})
}

func (h *Handlers) agencyPage(ctx context.Context, q listing.Query) listing.Page[catalog.Agency] {
	if h.cache != nil {
		cached, err := h.cache.GetAgencies(ctx, q)
		if err != nil {
			h.log.Error("cache get failed", "kind", "agencies", "err", err)
		}
		if cached != nil {
			return *cached
		}
	}

	page := listing.Agencies(h.catalog.Agencies(), q)

	if h.cache != nil {
		if err := h.cache.SetAgencies(ctx, q, &page); err != nil {
			h.log.Warn("cache set failed", "kind", "agencies", "err", err)
		}
	}
	return page
}

// GetDestination handles GET /api/v1/destinations/{id}.
func (h *Handlers) GetDestination(w http.ResponseWriter, r *http.Request) {
	d, ok := h.catalog.DestinationByID(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundView{
			Error:   "Destination Not Found",
			Message: "The destination you're looking for doesn't exist or has been removed.",
			Back:    "/api/v1/destinations",
		})
		return
	}

	writeJSON(w, http.StatusOK, destinationDetailResponse{
		Destination: d,
		Related:     h.catalog.Related(d, relatedLimit),
		Itinerary:   catalog.Itinerary(d),
	})
}

// GetAgency handles GET /api/v1/agencies/{id}.
func (h *Handlers) GetAgency(w http.ResponseWriter, r *http.Request) {
	a, ok := h.catalog.AgencyByID(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, notFoundView{
			Error:   "Agency Not Found",
			Message: "The agency you're looking for doesn't exist or has been removed.",
			Back:    "/api/v1/agencies",
		})
		return
	}

	writeJSON(w, http.StatusOK, agencyDetailResponse{
		Agency:       a,
		Headquarters: a.Headquarters(),
		Offices:      a.Offices(),
	})
}

// About handles GET /api/v1/about.
func (h *Handlers) About(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.About())
}

// SubmitContact handles POST /api/v1/contact.
func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var msg contact.Message
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxContactBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&msg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	receipt, err := h.contact.Submit(r.Context(), msg)
	switch {
	case errors.Is(err, contact.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.log.Warn("contact submission abandoned", "err", err)
		writeError(w, http.StatusServiceUnavailable, "submission cancelled")
		return
	case err != nil:
		h.log.Error("contact submission failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.log.Info("contact message received", "id", receipt.ID, "subject", msg.Subject)
	writeJSON(w, http.StatusOK, receipt)
}

// FlushCache handles DELETE /api/v1/admin/cache.
func (h *Handlers) FlushCache(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		writeError(w, http.StatusNotFound, "cache disabled")
		return
	}

	n, err := h.cache.Flush(r.Context())
	if err != nil {
		h.log.Error("cache flush failed", "deleted", n, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to flush cache")
		return
	}

	h.log.Info("listing cache flushed", "deleted", n)
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

// NotFound renders the fallback view for unmatched paths.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundView{
		Error:   "Page Not Found",
		Message: "Oops! The page you're looking for doesn't exist.",
		Back:    "/api/v1/home",
	})
}

// MethodNotAllowed renders a JSON 405.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// HealthHandlerFunc returns an http.HandlerFunc that checks db and redis connectivity.
// A nil pinger is reported as "disabled" and does not degrade the status.
func HealthHandlerFunc(db, redis Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		check := func(name string, p Pinger) string {
			if p == nil {
				return "disabled"
			}
			if err := p.Ping(ctx); err != nil {
				log.Error("health check: ping failed", "dependency", name, "err", err)
				status = http.StatusServiceUnavailable
				return "error"
			}
			return "ok"
		}

		dbStatus := check("db", db)
		redisStatus := check("redis", redis)

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		writeJSON(w, status, map[string]string{
			"status": overall,
			"db":     dbStatus,
			"redis":  redisStatus,
		})
	}
}
