package shared

import "math"

// PageRequest carries normalized page/per-page input for listings.
type PageRequest struct {
	Page    int
	PerPage int
}

// Normalize clamps page and per-page to sane values.
func (p PageRequest) Normalize() PageRequest {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = 10
	}
	if p.PerPage > 100 {
		p.PerPage = 100
	}
	return p
}

// Limit returns the SQL limit for the request.
func (p PageRequest) Limit() int {
	return p.Normalize().PerPage
}

// Offset returns the SQL offset for the request.
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PerPage
}

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata.
func NewPagination(req PageRequest, total int) Pagination {
	n := req.Normalize()
	totalPages := int(math.Ceil(float64(total) / float64(n.PerPage)))
	return Pagination{Page: n.Page, PerPage: n.PerPage, Total: total, TotalPages: totalPages}
}
