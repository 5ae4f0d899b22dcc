package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookmodel "readtrack-backend/internal/domains/book/model"
	bookrepo "readtrack-backend/internal/domains/book/repository"
	"readtrack-backend/internal/domains/review/model"
	"readtrack-backend/internal/domains/review/repository"
	usermodel "readtrack-backend/internal/domains/user/model"
	userrepo "readtrack-backend/internal/domains/user/repository"
	"readtrack-backend/pkg/cache"
	"readtrack-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type reviewService struct {
	reviewRepo repository.ReviewRepository
	bookRepo   bookrepo.BookRepository
	userRepo   userrepo.UserRepository
	cache      cache.Cache
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookRepo bookrepo.BookRepository,
	userRepo userrepo.UserRepository,
	cacheClient cache.Cache,
) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		userRepo:   userRepo,
		cache:      cacheClient,
	}
}

// =====================================================
// ADD REVIEW
// =====================================================

func (s *reviewService) AddReview(
	ctx context.Context,
	userID, bookID uuid.UUID,
	req model.CreateReviewRequest,
) (*model.ReviewResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		return nil, model.NewInvalidRatingError()
	}

	// Step 2: The book must exist
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, bookmodel.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	// Step 3: Create review entity
	review := &model.Review{
		ID:        uuid.New(),
		BookID:    bookID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		LikedBy:   []string{},
		CreatedAt: time.Now(),
	}

	// Step 4: Insert and recompute the aggregate in one transaction
	if err := s.reviewRepo.CreateWithRecompute(ctx, review); err != nil {
		if errors.Is(err, model.ErrAlreadyReviewed) {
			return nil, model.NewAlreadyReviewedError()
		}
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	// Step 5: The cached book detail now carries stale rating fields
	s.invalidateBook(ctx, bookID)

	// Step 6: Build response
	authorName := s.authorName(ctx, userID)
	return &model.ReviewResponse{
		ID:         review.ID,
		BookID:     review.BookID,
		UserID:     review.UserID,
		AuthorName: authorName,
		Rating:     review.Rating,
		Comment:    review.Comment,
		LikeCount:  0,
		LikedByMe:  false,
		CreatedAt:  review.CreatedAt,
	}, nil
}

// =====================================================
// DELETE REVIEW
// =====================================================

func (s *reviewService) DeleteReview(
	ctx context.Context,
	callerID uuid.UUID,
	callerRole string,
	reviewID uuid.UUID,
) error {
	// Step 1: Get review
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return model.NewReviewNotFoundError()
		}
		return fmt.Errorf("failed to get review: %w", err)
	}

	// Step 2: Author or admin only
	if review.UserID != callerID && callerRole != usermodel.RoleAdmin {
		return model.NewForbiddenError()
	}

	// Step 3: Delete and recompute the aggregate in one transaction
	if err := s.reviewRepo.DeleteWithRecompute(ctx, reviewID, review.BookID); err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return model.NewReviewNotFoundError()
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidateBook(ctx, review.BookID)

	return nil
}

// =====================================================
// TOGGLE LIKE
// =====================================================

func (s *reviewService) ToggleLike(
	ctx context.Context,
	userID, reviewID uuid.UUID,
) (*model.LikeResponse, error) {
	review, liked, err := s.reviewRepo.ToggleLike(ctx, reviewID, userID)
	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, model.NewReviewNotFoundError()
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	return &model.LikeResponse{
		ReviewID:  reviewID,
		Liked:     liked,
		LikeCount: review.LikeCount(),
	}, nil
}

// =====================================================
// LIST BY BOOK
// =====================================================

func (s *reviewService) ListByBook(
	ctx context.Context,
	bookID uuid.UUID,
	viewerID *uuid.UUID,
) (*model.ListReviewsResponse, error) {
	// The book must exist so a missing book is not an empty list
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, bookmodel.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	items, err := s.reviewRepo.ListByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	reviews := make([]model.ReviewResponse, 0, len(items))
	for _, item := range items {
		likedByMe := false
		if viewerID != nil {
			likedByMe = item.Review.LikedByUser(*viewerID)
		}
		reviews = append(reviews, model.ReviewResponse{
			ID:         item.Review.ID,
			BookID:     item.Review.BookID,
			UserID:     item.Review.UserID,
			AuthorName: item.AuthorName,
			Rating:     item.Review.Rating,
			Comment:    item.Review.Comment,
			LikeCount:  item.Review.LikeCount(),
			LikedByMe:  likedByMe,
			CreatedAt:  item.Review.CreatedAt,
		})
	}

	return &model.ListReviewsResponse{Reviews: reviews}, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *reviewService) invalidateBook(ctx context.Context, bookID uuid.UUID) {
	if err := s.cache.Delete(ctx, bookmodel.CacheKey(bookID)); err != nil {
		logger.Warn("failed to invalidate book cache", map[string]interface{}{
			"book_id": bookID.String(),
			"error":   err.Error(),
		})
	}
}

func (s *reviewService) authorName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.FullName
}
