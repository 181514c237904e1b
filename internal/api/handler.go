// Package api serves the job listings and saved filters over JSON.
//
// Routes:
//
//	GET    /api/jobs                  filter, sort and paginate listings
//	GET    /api/filters/{userID}      stored filter state
//	PUT    /api/filters/{userID}      replace filter state
//	DELETE /api/filters/{userID}      forget filter state
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/honeycarbs/careerhub/internal/domain"
	"github.com/honeycarbs/careerhub/pkg/logging"
)

// JobQuerier answers filter queries
type JobQuerier interface {
	Query(ctx context.Context, spec domain.FilterSpec) (domain.QueryResult, error)
}

// FilterService stores per-user filter state
type FilterService interface {
	Save(ctx context.Context, userID string, f domain.SavedFilters) error
	Load(ctx context.Context, userID string) (domain.SavedFilters, error)
	LoadOrDefault(ctx context.Context, userID string) (domain.SavedFilters, error)
	Reset(ctx context.Context, userID string) error
}

// Handler holds shared dependencies
type Handler struct {
	jobs     JobQuerier
	filters  FilterService
	pageSize int
	logger   *logging.Logger
}

// NewHandler returns a configured Handler. A pageSize below 1 uses the
// engine default.
func NewHandler(jobs JobQuerier, filters FilterService, pageSize int, logger *logging.Logger) *Handler {
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{jobs: jobs, filters: filters, pageSize: pageSize, logger: logger.Named("api")}
}

// RegisterRoutes mounts the API on mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/jobs", h.listJobs)
	mux.HandleFunc("GET /api/filters/{userID}", h.getFilters)
	mux.HandleFunc("PUT /api/filters/{userID}", h.putFilters)
	mux.HandleFunc("DELETE /api/filters/{userID}", h.deleteFilters)
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	base := domain.DefaultSavedFilters()
	if userID := q.Get("userId"); userID != "" && h.filters != nil {
		var err error
		if base, err = h.filters.LoadOrDefault(r.Context(), userID); err != nil {
			h.fail(w, err)
			return
		}
	}

	spec, err := parseQuery(q, base, h.pageSize)
	if err != nil {
		h.fail(w, err)
		return
	}

	res, err := h.jobs.Query(r.Context(), spec)
	if err != nil {
		h.fail(w, err)
		return
	}
	jsonOK(w, res)
}

func (h *Handler) getFilters(w http.ResponseWriter, r *http.Request) {
	f, err := h.filters.Load(r.Context(), r.PathValue("userID"))
	if err != nil {
		h.fail(w, err)
		return
	}
	jsonOK(w, f)
}

func (h *Handler) putFilters(w http.ResponseWriter, r *http.Request) {
	f := domain.DefaultSavedFilters()
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	userID := r.PathValue("userID")
	if err := h.filters.Save(r.Context(), userID, f); err != nil {
		h.fail(w, err)
		return
	}

	saved, err := h.filters.Load(r.Context(), userID)
	if err != nil {
		h.fail(w, err)
		return
	}
	jsonOK(w, saved)
}

func (h *Handler) deleteFilters(w http.ResponseWriter, r *http.Request) {
	if err := h.filters.Reset(r.Context(), r.PathValue("userID")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps err onto a status code
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		jsonError(w, vErr.Msg, http.StatusBadRequest)
	case errors.Is(err, domain.ErrNotFound):
		jsonError(w, "not found", http.StatusNotFound)
	default:
		h.logger.Error("request failed", "err", err)
		jsonError(w, "internal error", http.StatusInternalServerError)
	}
}

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
