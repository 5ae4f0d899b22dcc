package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is the number of books a recommendation run returns
const DefaultLimit = 10

// CacheTTL is how long a per-user recommendation set stays cached
const CacheTTL = 5 * time.Minute

// CacheKey builds the redis key for a user's recommendation set
func CacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("recommendations:user:%s", userID)
}

// RecommendedBook is one entry in a recommendation set
type RecommendedBook struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genres        []string  `json:"genres"`
	CoverURL      *string   `json:"cover_url"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int       `json:"rating_count"`
}

// RecommendationsResponse response for the recommendation endpoint
type RecommendationsResponse struct {
	Books []RecommendedBook `json:"books"`
}
