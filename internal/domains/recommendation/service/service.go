package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	bookmodel "readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/domains/recommendation/model"
	"readtrack-backend/internal/domains/recommendation/repository"
	usermodel "readtrack-backend/internal/domains/user/model"
	userrepo "readtrack-backend/internal/domains/user/repository"
	"readtrack-backend/pkg/cache"
	"readtrack-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type recommendationService struct {
	recRepo  repository.RecommendationRepository
	userRepo userrepo.UserRepository
	cache    cache.Cache
}

func NewRecommendationService(
	recRepo repository.RecommendationRepository,
	userRepo userrepo.UserRepository,
	cacheClient cache.Cache,
) ServiceInterface {
	return &recommendationService{
		recRepo:  recRepo,
		userRepo: userRepo,
		cache:    cacheClient,
	}
}

// =====================================================
// GET RECOMMENDATIONS
// =====================================================

func (s *recommendationService) GetRecommendations(
	ctx context.Context,
	userID uuid.UUID,
) (*model.RecommendationsResponse, error) {
	// Step 1: Try the per-user cache
	cacheKey := model.CacheKey(userID)
	cached := &model.RecommendationsResponse{}
	if found, err := s.cache.Get(ctx, cacheKey, cached); err == nil && found {
		return cached, nil
	}

	// Step 2: Favourite genres drive the primary pass
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usermodel.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var picks []bookmodel.Book
	if len(user.FavoriteGenres) > 0 {
		picks, err = s.recRepo.ListByGenres(ctx, userID, user.FavoriteGenres, model.DefaultLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list genre candidates: %w", err)
		}
	}

	// Step 3: Backfill with globally top-rated books when the genre pass
	// comes up short (or favourites are empty)
	if len(picks) < model.DefaultLimit {
		exclude := make([]uuid.UUID, 0, len(picks))
		for _, book := range picks {
			exclude = append(exclude, book.ID)
		}

		backfill, err := s.recRepo.ListTopRated(ctx, userID, exclude, model.DefaultLimit-len(picks))
		if err != nil {
			return nil, fmt.Errorf("failed to list backfill candidates: %w", err)
		}
		picks = append(picks, backfill...)
	}

	// Step 4: Build response
	books := make([]model.RecommendedBook, 0, len(picks))
	for _, book := range picks {
		genres := book.Genres
		if genres == nil {
			genres = []string{}
		}
		books = append(books, model.RecommendedBook{
			ID:            book.ID,
			Title:         book.Title,
			Author:        book.Author,
			Genres:        genres,
			CoverURL:      book.CoverURL,
			AverageRating: book.AverageRating,
			RatingCount:   book.RatingCount,
		})
	}

	resp := &model.RecommendationsResponse{Books: books}

	// Step 5: Cache with a short TTL; shelf and profile writes invalidate
	if err := s.cache.Set(ctx, cacheKey, resp, model.CacheTTL); err != nil {
		logger.Warn("failed to cache recommendations", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}

	return resp, nil
}
