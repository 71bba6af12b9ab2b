package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

type Handlers struct{ Svc *app.ReviewService }

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/reviews/internal", h.internalReviews)
	s.mux.Get("/api/reviews/thirdparty", h.thirdPartyReviews)
	s.mux.Get("/api/reviews", h.dashboard)
	s.mux.Post("/api/reviews/{id}/visibility", h.toggleVisibility)
	s.mux.Get("/api/properties/{slug}/reviews", h.propertyReviews)
}

// writeError emits the {"error": ...} body every failure path uses.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) internalReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Svc.Internal(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (h *Handlers) thirdPartyReviews(w http.ResponseWriter, r *http.Request) {
	placeID := r.URL.Query().Get("placeId")
	rs, err := h.Svc.ThirdParty(r.Context(), placeID)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, "placeId is required")
			return
		}
		writeError(w, http.StatusBadGateway, "Failed to fetch reviews")
		return
	}
	if rs == nil {
		rs = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, rs)
}

// dashboard serves the manager view. Query params: rating ("all" or a
// number), property, channel, category, sort (newest|oldest|highest|lowest).
func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	cfg, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.Svc.Dashboard(r.Context(), cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func parseFilter(r *http.Request) (domain.FilterConfig, error) {
	q := r.URL.Query()
	cfg := domain.FilterConfig{
		Property: q.Get("property"),
		Channel:  q.Get("channel"),
		Category: q.Get("category"),
		Sort:     domain.SortNewest,
	}
	if v := q.Get("rating"); v != "" && v != "all" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, errors.New("rating must be a number or 'all'")
		}
		cfg.MinRating = &f
	}
	switch s := domain.SortOption(q.Get("sort")); s {
	case "", domain.SortNewest:
		// default stands
	case domain.SortOldest, domain.SortHighest, domain.SortLowest:
		cfg.Sort = s
	default:
		return cfg, errors.New("sort must be one of newest, oldest, highest, lowest")
	}
	return cfg, nil
}

func (h *Handlers) toggleVisibility(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a number")
		return
	}
	hidden, err := h.Svc.ToggleVisibility(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to toggle visibility")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "hidden": hidden})
}

func (h *Handlers) propertyReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Svc.PropertyReviews(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, rs)
}
