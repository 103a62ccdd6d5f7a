package store

import (
	"math"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// PageParams carries normalized pagination and search input for the list
// endpoints. A missing, non-numeric, or non-positive page or limit falls
// back to the defaults; search is an optional case-insensitive substring
// matched against the entity name.
type PageParams struct {
	Page   int
	Limit  int
	Search string
}

// NewPageParams parses the raw query values into normalized parameters.
func NewPageParams(page, limit, search string) PageParams {
	p := PageParams{
		Page:   defaultPage,
		Limit:  defaultLimit,
		Search: strings.TrimSpace(search),
	}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		p.Limit = n
	}
	return p
}

// Offset returns the number of rows to skip for the requested page.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for a total that ignores pagination.
func (p PageParams) TotalPages(total int64) int {
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}
