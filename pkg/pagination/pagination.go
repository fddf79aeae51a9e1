package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

// Params holds pagination and sorting parameters extracted from query strings.
type Params struct {
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	SortBy  string `json:"sort_by,omitempty"`
	SortDir string `json:"sort_dir,omitempty"`
	Offset  int    `json:"-"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:    1,
		PerPage: 20,
		SortDir: "asc",
		Offset:  0,
	}
}

// FromRequest extracts pagination and sorting parameters from an HTTP request.
// sortable is the whitelist of accepted sort_by values; anything else falls
// back to the first entry (or empty when no sortable columns are given).
func FromRequest(r *http.Request, sortable ...string) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 100 {
			p.PerPage = v
		}
	}

	if len(sortable) > 0 {
		p.SortBy = sortable[0]
		if requested := r.URL.Query().Get("sort_by"); requested != "" {
			for _, col := range sortable {
				if col == requested {
					p.SortBy = requested
					break
				}
			}
		}
	}

	if dir := strings.ToLower(r.URL.Query().Get("sort_dir")); dir == "desc" {
		p.SortDir = "desc"
	}

	p.Offset = (p.Page - 1) * p.PerPage
	return p
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewResult creates a paginated result.
func NewResult[T any](data []T, totalCount int, params Params) Result[T] {
	totalPages := totalCount / params.PerPage
	if totalCount%params.PerPage > 0 {
		totalPages++
	}

	if data == nil {
		data = []T{}
	}

	return Result[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
		HasPrev:    params.Page > 1,
	}
}
