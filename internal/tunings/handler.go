package tunings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/pkg/handlers"
	"github.com/calyxlabs/calyx/pkg/pagination"
	"github.com/calyxlabs/calyx/pkg/routes"
)

// Handler provides HTTP endpoints for tuning operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "tunings"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for tuning endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/tunings",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/best/{dataset_id}", Handler: h.Best},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "", Handler: h.Run},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of tunings with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single tuning by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	t, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, t)
}

// Search accepts a JSON body with pagination and filter criteria and returns
// matching tunings.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Run evaluates a hyperparameter grid against the referenced dataset and
// returns the stored per-cell results.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var cmd RunCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if cmd.DatasetID == uuid.Nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	results, err := h.sys.Run(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, results)
}

// Best returns the highest-quality stored tuning for a dataset.
func (h *Handler) Best(w http.ResponseWriter, r *http.Request) {
	datasetID, err := uuid.Parse(r.PathValue("dataset_id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	t, err := h.sys.Best(r.Context(), datasetID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, t)
}

// Delete removes a tuning by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
