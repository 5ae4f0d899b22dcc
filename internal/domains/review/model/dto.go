package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateReviewRequest request to review a book
type CreateReviewRequest struct {
	Rating  int     `json:"rating" binding:"required"`
	Comment *string `json:"comment"`
}

func (r *CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Rating, validation.Required,
			validation.Min(MinRating), validation.Max(MaxRating)),
		validation.Field(&r.Comment, validation.Length(0, 2000)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ReviewResponse public view of a review
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	BookID     uuid.UUID `json:"book_id"`
	UserID     uuid.UUID `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	LikeCount  int       `json:"like_count"`
	LikedByMe  bool      `json:"liked_by_me"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListReviewsResponse all reviews of a book in creation order
type ListReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// LikeResponse response after toggling a like
type LikeResponse struct {
	ReviewID  uuid.UUID `json:"review_id"`
	Liked     bool      `json:"liked"`
	LikeCount int       `json:"like_count"`
}
