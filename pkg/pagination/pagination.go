package pagination

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/calyxlabs/calyx/pkg/query"
)

// SortFields wraps []query.SortField with flexible JSON unmarshaling:
// either a string ("name,-uploaded_at") or an array of SortField objects.
type SortFields []query.SortField

// UnmarshalJSON supports both the comma-separated string and array formats.
func (s *SortFields) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = query.ParseSortFields(str)
		return nil
	}

	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest is a client request for a page of data with optional search
// and sorting.
type PageRequest struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Search   *string    `json:"search,omitempty"`
	Sort     SortFields `json:"sort,omitempty"`
}

// Normalize clamps the request to valid pagination values per the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
	if r.PageSize > cfg.MaxPageSize {
		r.PageSize = cfg.MaxPageSize
	}
}

// Offset is the number of records to skip for the requested page.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageRequestFromQuery parses page, page_size, search, and sort query
// parameters into a normalized PageRequest.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	pageSize, _ := strconv.Atoi(values.Get("page_size"))

	var search *string
	if s := values.Get("search"); s != "" {
		search = &s
	}

	req := PageRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   search,
		Sort:     query.ParseSortFields(values.Get("sort")),
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// NewPageResult creates a PageResult with calculated total pages.
func NewPageResult[T any](data []T, total, page, pageSize int) PageResult[T] {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	if totalPages < 1 {
		totalPages = 1
	}

	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
