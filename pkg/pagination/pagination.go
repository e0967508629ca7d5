package pagination

import (
	"net/http"
	"strconv"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a page request. Zero PerPage means "everything on one page".
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// FromRequest reads page and per_page from the query string. Missing or
// invalid values fall back to page 1 and, when per_page is absent, to an
// unpaginated request.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	p := Params{Page: 1}

	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	if raw := q.Get("per_page"); raw != "" {
		p.PerPage = DefaultPerPage
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.PerPage = min(v, MaxPerPage)
		}
	}
	return p
}

// Result is one page of items plus the position metadata.
type Result[T any] struct {
	Items      []T  `json:"items"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Slice cuts the requested page out of an in-memory list. Pages past the
// end are empty, not errors.
func Slice[T any](all []T, p Params) Result[T] {
	total := len(all)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		return Result[T]{Items: all, TotalCount: total, Page: 1, PerPage: total, TotalPages: 1}
	}

	pages := (total + p.PerPage - 1) / p.PerPage
	start := min((p.Page-1)*p.PerPage, total)
	end := min(start+p.PerPage, total)

	return Result[T]{
		Items:      all[start:end],
		TotalCount: total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}
