package service

import (
	"context"

	"github.com/google/uuid"

	"readtrack-backend/internal/domains/review/model"
)

// ServiceInterface defines review service operations
type ServiceInterface interface {
	AddReview(ctx context.Context, userID, bookID uuid.UUID, req model.CreateReviewRequest) (*model.ReviewResponse, error)

	// DeleteReview removes a review; allowed for its author or an admin
	DeleteReview(ctx context.Context, callerID uuid.UUID, callerRole string, reviewID uuid.UUID) error

	ToggleLike(ctx context.Context, userID, reviewID uuid.UUID) (*model.LikeResponse, error)

	// ListByBook returns a book's reviews in creation order. viewerID is
	// optional and only drives the liked_by_me flag.
	ListByBook(ctx context.Context, bookID uuid.UUID, viewerID *uuid.UUID) (*model.ListReviewsResponse, error)
}
