package repository

import (
	"context"

	"github.com/google/uuid"

	"readtrack-backend/internal/domains/review/model"
)

// ReviewWithAuthor pairs a review with its author's display name
type ReviewWithAuthor struct {
	Review     model.Review
	AuthorName string
}

// ReviewRepository defines data access for the review ledger.
// Every write that touches the aggregate rating recomputes it from the
// full rating set inside the same transaction.
type ReviewRepository interface {
	// CreateWithRecompute inserts the review and recomputes the book's
	// average_rating and rating_count in one transaction.
	CreateWithRecompute(ctx context.Context, review *model.Review) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	// DeleteWithRecompute removes the review and recomputes the book's
	// aggregate in one transaction.
	DeleteWithRecompute(ctx context.Context, id uuid.UUID, bookID uuid.UUID) error

	// ToggleLike flips the user's like on the review under a row lock
	// and returns the updated review.
	ToggleLike(ctx context.Context, reviewID, userID uuid.UUID) (*model.Review, bool, error)

	// ListByBook returns the book's reviews in creation order with
	// author display names.
	ListByBook(ctx context.Context, bookID uuid.UUID) ([]ReviewWithAuthor, error)
}
