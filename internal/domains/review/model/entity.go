package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review represents one user's review of one book
type Review struct {
	ID     uuid.UUID `json:"id"`
	BookID uuid.UUID `json:"book_id"`
	UserID uuid.UUID `json:"user_id"`

	Rating  int     `json:"rating"` // 1-5
	Comment *string `json:"comment"`

	// UUID strings of users who liked the review, no duplicates
	LikedBy []string `json:"liked_by"`

	CreatedAt time.Time `json:"created_at"`
}

// LikeCount returns how many users liked the review
func (r *Review) LikeCount() int {
	return len(r.LikedBy)
}

// LikedByUser checks whether the given user liked the review
func (r *Review) LikedByUser(userID uuid.UUID) bool {
	id := userID.String()
	for _, liker := range r.LikedBy {
		if liker == id {
			return true
		}
	}
	return false
}

// ToggleLike adds or removes the user from the liked set and reports
// whether the review is liked afterwards.
func (r *Review) ToggleLike(userID uuid.UUID) bool {
	id := userID.String()
	for i, liker := range r.LikedBy {
		if liker == id {
			r.LikedBy = append(r.LikedBy[:i], r.LikedBy[i+1:]...)
			return false
		}
	}
	r.LikedBy = append(r.LikedBy, id)
	return true
}

// ComputeAverage recomputes the aggregate rating from the full rating set.
// Returns the mean rounded to two decimals and the count; an empty set
// yields 0/0. Always a pure recompute, never an incremental adjustment.
func ComputeAverage(ratings []int) (float64, int) {
	if len(ratings) == 0 {
		return 0, 0
	}

	sum := decimal.Zero
	for _, rating := range ratings {
		sum = sum.Add(decimal.NewFromInt(int64(rating)))
	}

	mean := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(2)
	avg, _ := mean.Float64()
	return avg, len(ratings)
}
