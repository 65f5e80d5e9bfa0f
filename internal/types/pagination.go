package types

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination carries the page/limit query parameters shared by all list endpoints.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Normalize clamps the pagination parameters into their valid ranges,
// applying defaults for missing values.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Skip returns the number of rows to skip for the current page.
func (p Pagination) Skip() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the number of pages needed for total rows at the current limit.
func (p Pagination) TotalPages(total int) int {
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}

// SearchAssetsRequest are the query parameters of GET /broker/assets/search.
// Ticker and name are matched case-insensitively as substrings.
type SearchAssetsRequest struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Pagination
}

// PaginatedResponse wraps a page of results with pagination metadata.
type PaginatedResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// NewPaginatedResponse builds a PaginatedResponse for one page of data.
func NewPaginatedResponse[T any](data []T, total int, p Pagination) PaginatedResponse[T] {
	return PaginatedResponse[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
	}
}
