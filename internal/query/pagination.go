package query

import (
	"strconv"

	"gorm.io/gorm"
)

// MaxLimit caps every listing page size regardless of the per-endpoint
// default.
const MaxLimit = 100

// Page holds resolved pagination bounds.
type Page struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePage resolves raw page/limit strings. Non-numeric or sub-1 pages fall
// back to 1; the limit falls back to defLimit and is clamped to MaxLimit.
func ParsePage(pageRaw, limitRaw string, defLimit int) Page {
	page := 1
	if v, err := strconv.Atoi(pageRaw); err == nil && v >= 1 {
		page = v
	}

	limit := defLimit
	if v, err := strconv.Atoi(limitRaw); err == nil && v >= 1 {
		limit = v
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Page{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Pages computes ceil(total / limit). A page beyond this count yields an
// empty item list with total unchanged.
func (p Page) Pages(total int64) int {
	if total == 0 {
		return 0
	}
	pages := int(total) / p.Limit
	if int(total)%p.Limit != 0 {
		pages++
	}
	return pages
}

// Scope applies the bounds to a gorm query.
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset).Limit(p.Limit)
}

// Order resolves a sort key against the allowed set, falling back to def for
// absent or unrecognized keys. def is itself a key into allowed, so the
// returned clause always comes from the allowed map, never from the request.
func Order(raw string, allowed map[string]string, def string) string {
	if clause, ok := allowed[raw]; ok {
		return clause
	}
	return allowed[def]
}
