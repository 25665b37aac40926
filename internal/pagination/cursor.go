// Package pagination implements cursor-based paging over monotonically
// increasing primary keys.
//
// The cursor is the id of the last item on the previous page, exposed to
// clients as an opaque value. Because the predicate is a strict inequality on
// an immutable id rather than an offset, pages already begun are never gapped
// or duplicated by inserts above the cursor, and a cursor pointing at a row
// deleted after it was issued still resumes correctly.
package pagination

import (
	"snsapp/internal/models"

	"gorm.io/gorm"
)

// Order is the id direction of a listing.
type Order int

const (
	// Descending is newest-first: content feeds (posts, comments, recomments).
	Descending Order = iota
	// Ascending is oldest-first: relationship listings (followers, followings,
	// likers). The asymmetry is deliberate and mirrors the product behavior.
	Ascending
)

// ValidateLimit rejects page sizes below 1. No upper bound is enforced here;
// the API layer may cap it.
func ValidateLimit(limit int) error {
	if limit < 1 {
		return models.NewInvalidArgumentError("limit must be >= 1")
	}
	return nil
}

// Scope returns a GORM scope applying the cursor predicate and ordering for
// rows whose cursor column is "<table>.id". A nil cursor starts from the
// beginning.
func Scope(cursor *uint, order Order) func(*gorm.DB) *gorm.DB {
	return ScopeOn("id", cursor, order)
}

// ScopeOn is Scope with an explicit cursor column, for listings whose cursor
// is a joined table's id (e.g. members.id on follower listings).
func ScopeOn(column string, cursor *uint, order Order) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cursor != nil {
			if order == Ascending {
				db = db.Where(column+" > ?", *cursor)
			} else {
				db = db.Where(column+" < ?", *cursor)
			}
		}
		if order == Ascending {
			return db.Order(column + " ASC")
		}
		return db.Order(column + " DESC")
	}
}

// Page is the pagination envelope returned by list endpoints.
type Page[T any] struct {
	Items      []T   `json:"items"`
	HasNext    bool  `json:"has_next"`
	NextCursor *uint `json:"next_cursor,omitempty"`
}

// NewPage builds the envelope for a fetched page. A page shorter than limit
// signals the end of the collection; otherwise the next cursor is the id of
// the last item.
func NewPage[T any](items []T, limit int, id func(T) uint) Page[T] {
	page := Page[T]{Items: items}
	if len(items) == limit {
		last := id(items[len(items)-1])
		page.HasNext = true
		page.NextCursor = &last
	}
	if page.Items == nil {
		page.Items = []T{}
	}
	return page
}
