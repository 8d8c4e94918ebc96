package stats

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 12
)

// Paginate applies defaults to non-positive page and limit values and returns the
// row offset of the page. A page whose offset would overflow falls back to DefaultPage.
func Paginate(page, limit int) (int, int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page <= 0 || page-1 > math.MaxInt/limit {
		page = DefaultPage
	}
	return page, limit, (page - 1) * limit
}

// TotalPages is ceil(total/limit); limit must be positive.
func TotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return int(pages)
}
