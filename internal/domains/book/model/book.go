package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DetailCacheTTL is how long a cached book detail stays valid
const DetailCacheTTL = 10 * time.Minute

// CacheKey builds the redis key for a book detail
func CacheKey(bookID uuid.UUID) string {
	return fmt.Sprintf("book:%s", bookID)
}

// Book represents a catalog entry
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Genres      []string  `json:"genres"`
	Description *string   `json:"description"`
	CoverURL    *string   `json:"cover_url"`

	// 0 means the page count is unknown
	PageCount int `json:"page_count"`

	// Derived from the review set, never written directly
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`

	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasKnownPageCount checks whether progress can be bounded
func (b *Book) HasKnownPageCount() bool {
	return b.PageCount > 0
}
