package pagination

import (
	"net/url"
	"strconv"

	"github.com/petsalon/salon-api/internal/pkg/apperror"
)

// MaxPerPage bounds per_page for every paginated listing.
const MaxPerPage = 50

// Params is a validated page request.
type Params struct {
	Page    int
	PerPage int
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// FromQuery reads page and per_page from query values.
// Missing values fall back to page 1 and defaultPerPage; per_page above MaxPerPage is capped.
func FromQuery(q url.Values, defaultPerPage int) (Params, error) {
	p := Params{Page: 1, PerPage: defaultPerPage}

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, apperror.Validation("Invalid page parameter")
		}
		p.Page = page
	}

	if raw := q.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage < 1 {
			return Params{}, apperror.Validation("Invalid per_page parameter")
		}
		p.PerPage = perPage
	}

	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p, nil
}

// Meta is the pagination block returned with a page of results.
type Meta struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// NewMeta computes pages as ceil(total / per_page).
func NewMeta(p Params, total int) Meta {
	pages := 0
	if p.PerPage > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	return Meta{
		Page:    p.Page,
		PerPage: p.PerPage,
		Total:   total,
		Pages:   pages,
	}
}
