package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	bookmodel "readtrack-backend/internal/domains/book/model"
	bookrepo "readtrack-backend/internal/domains/book/repository"
	recmodel "readtrack-backend/internal/domains/recommendation/model"
	"readtrack-backend/internal/domains/shelf/model"
	"readtrack-backend/internal/domains/shelf/repository"
	"readtrack-backend/pkg/cache"
	"readtrack-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type shelfService struct {
	shelfRepo repository.ShelfRepository
	bookRepo  bookrepo.BookRepository
	cache     cache.Cache
}

func NewShelfService(
	shelfRepo repository.ShelfRepository,
	bookRepo bookrepo.BookRepository,
	cacheClient cache.Cache,
) ServiceInterface {
	return &shelfService{
		shelfRepo: shelfRepo,
		bookRepo:  bookRepo,
		cache:     cacheClient,
	}
}

// =====================================================
// SET STATUS
// =====================================================

func (s *shelfService) SetStatus(
	ctx context.Context,
	userID, bookID uuid.UUID,
	req model.SetStatusRequest,
) (*model.StatusResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return nil, model.NewInvalidStatusError(req.Status)
	}

	// Step 2: The book must exist in the catalog
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, bookmodel.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	// Step 3: Resolve current page, keeping any existing progress
	currentPage := 0
	existing, err := s.shelfRepo.Get(ctx, userID, bookID)
	if err != nil && !errors.Is(err, model.ErrEntryNotFound) {
		return nil, fmt.Errorf("failed to get shelf entry: %w", err)
	}
	if existing != nil {
		currentPage = existing.CurrentPage
	}
	if req.CurrentPage != nil {
		currentPage = *req.CurrentPage
	}
	currentPage = model.ClampPage(currentPage, book.PageCount)

	// Step 4: Upsert the entry
	entry := &model.ShelfEntry{
		UserID:      userID,
		BookID:      bookID,
		Status:      status,
		CurrentPage: currentPage,
		UpdatedAt:   time.Now(),
	}

	if err := s.shelfRepo.Upsert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to upsert shelf entry: %w", err)
	}

	// Step 5: Shelf contents changed, cached recommendations are stale
	s.invalidateRecommendations(ctx, userID)

	return &model.StatusResponse{
		BookID:      bookID,
		Status:      entry.Status,
		CurrentPage: entry.CurrentPage,
		UpdatedAt:   entry.UpdatedAt,
	}, nil
}

// =====================================================
// LIST MINE
// =====================================================

func (s *shelfService) ListMine(
	ctx context.Context,
	userID uuid.UUID,
) (*model.ShelfResponse, error) {
	items, err := s.shelfRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shelf: %w", err)
	}

	entries := make([]model.ShelfEntryResponse, 0, len(items))
	for _, item := range items {
		entries = append(entries, model.ShelfEntryResponse{
			Book:        *bookmodel.NewBookResponse(&item.Book),
			Status:      item.Entry.Status,
			CurrentPage: item.Entry.CurrentPage,
			UpdatedAt:   item.Entry.UpdatedAt,
		})
	}

	return &model.ShelfResponse{Entries: entries}, nil
}

// =====================================================
// GET PROGRESS
// =====================================================

func (s *shelfService) GetProgress(
	ctx context.Context,
	userID, bookID uuid.UUID,
) (*model.ProgressResponse, error) {
	entry, err := s.shelfRepo.Get(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			return nil, model.NewEntryNotFoundError()
		}
		return nil, fmt.Errorf("failed to get shelf entry: %w", err)
	}

	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, bookmodel.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return &model.ProgressResponse{
		Progress:   entry.CurrentPage,
		TotalPages: book.PageCount,
	}, nil
}

// =====================================================
// UPDATE PROGRESS
// =====================================================

func (s *shelfService) UpdateProgress(
	ctx context.Context,
	userID, bookID uuid.UUID,
	req model.UpdateProgressRequest,
) (*model.ProgressResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: The book bounds the progress
	book, err := s.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, bookmodel.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	page := model.ClampPage(req.Progress, book.PageCount)

	// Step 3: Progress only applies to an existing entry
	if err := s.shelfRepo.UpdateProgress(ctx, userID, bookID, page); err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			return nil, model.NewEntryNotFoundError()
		}
		return nil, fmt.Errorf("failed to update progress: %w", err)
	}

	return &model.ProgressResponse{
		Progress:   page,
		TotalPages: book.PageCount,
	}, nil
}

func (s *shelfService) invalidateRecommendations(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, recmodel.CacheKey(userID)); err != nil {
		logger.Warn("failed to invalidate recommendation cache", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}
}
