package pagination

import (
	"math"
	"strconv"
)

// DefaultPageSize matches the complaint forum page size.
const DefaultPageSize = 6

// Pagination represents pagination metadata
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
	Offset  int   `json:"-"`
}

// New creates pagination metadata. A page past the end is clamped to the
// last valid page, so a filter change that shrinks the result set never
// leaves the caller on an empty page.
func New(page, limit int, total int64) *Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	pages := int(math.Ceil(float64(total) / float64(limit)))
	if pages < 1 {
		pages = 1
	}
	if page > pages {
		page = pages
	}

	return &Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
		Offset:  (page - 1) * limit,
	}
}

// FromQuery parses a page number from a query string value, defaulting to 1.
func FromQuery(pageStr string) int {
	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	return page
}
