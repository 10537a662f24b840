package datasets

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/calyxlabs/calyx/pkg/handlers"
	"github.com/calyxlabs/calyx/pkg/pagination"
	"github.com/calyxlabs/calyx/pkg/routes"
)

// Handler provides HTTP endpoints for dataset operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	pagination    pagination.Config
	maxUploadSize int64
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "datasets"),
		pagination:    pagination,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for dataset endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/datasets",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/download", Handler: h.Download},
			{Method: "POST", Pattern: "", Handler: h.Upload},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns a paginated list of datasets with optional query parameter filters.
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

// Find returns a single dataset by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	set, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, set)
}

// Search accepts a JSON body with pagination and filter criteria and returns
// matching datasets.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
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

// Upload processes a multipart form upload containing a labeled sample file
// in CSV or JSON form, partitions it, and registers the dataset.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = strings.TrimSuffix(header.Filename, "."+extension(header.Filename))
	}

	cmd := CreateCommand{
		Data:        data,
		Name:        name,
		Filename:    header.Filename,
		ContentType: detectContentType(header.Header.Get("Content-Type"), header.Filename),
	}

	set, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, set)
}

// Download streams the originally uploaded file back to the client.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	set, reader, err := h.sys.Download(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", set.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", set.Filename))
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("dataset download interrupted", "id", id, "error", err)
	}
}

// Delete removes a dataset by its UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFile)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func detectContentType(header, filename string) string {
	header = strings.TrimSpace(header)
	if header != "" && header != "application/octet-stream" {
		return header
	}

	switch extension(filename) {
	case "json":
		return "application/json"
	default:
		return "text/csv"
	}
}

func extension(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return strings.ToLower(filename[idx+1:])
	}
	return ""
}
