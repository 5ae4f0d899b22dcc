package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/domains/book/repository"
	"readtrack-backend/pkg/cache"
	"readtrack-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type bookService struct {
	bookRepo repository.BookRepository
	cache    cache.Cache
}

func NewBookService(
	bookRepo repository.BookRepository,
	cacheClient cache.Cache,
) ServiceInterface {
	return &bookService{
		bookRepo: bookRepo,
		cache:    cacheClient,
	}
}

// =====================================================
// LIST BOOKS
// =====================================================

func (s *bookService) ListBooks(
	ctx context.Context,
	req model.ListBooksRequest,
) (*model.ListBooksResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	books, total, err := s.bookRepo.List(ctx, req.Search, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	responses := make([]model.BookResponse, 0, len(books))
	for _, book := range books {
		responses = append(responses, *model.NewBookResponse(book))
	}

	return &model.ListBooksResponse{
		Books:      responses,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

// =====================================================
// GET BOOK
// =====================================================

func (s *bookService) GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	// Try cache first
	cacheKey := model.CacheKey(id)
	cached := &model.BookResponse{}
	if found, err := s.cache.Get(ctx, cacheKey, cached); err == nil && found {
		return cached, nil
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	resp := model.NewBookResponse(book)

	if err := s.cache.Set(ctx, cacheKey, resp, model.DetailCacheTTL); err != nil {
		logger.Warn("failed to cache book detail", map[string]interface{}{
			"book_id": id.String(),
			"error":   err.Error(),
		})
	}

	return resp, nil
}

// =====================================================
// ADMIN: CREATE BOOK
// =====================================================

func (s *bookService) CreateBook(
	ctx context.Context,
	adminID uuid.UUID,
	req model.CreateBookRequest,
) (*model.BookResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Build entity; ratings start at zero
	book := &model.Book{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(req.Title),
		Author:        strings.TrimSpace(req.Author),
		Genres:        normalizeGenres(req.Genres),
		Description:   req.Description,
		CoverURL:      req.CoverURL,
		PageCount:     req.PageCount,
		AverageRating: 0,
		RatingCount:   0,
		CreatedBy:     adminID,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	// Step 3: Save to database
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return model.NewBookResponse(book), nil
}

// =====================================================
// ADMIN: UPDATE BOOK
// =====================================================

func (s *bookService) UpdateBook(
	ctx context.Context,
	id uuid.UUID,
	req model.UpdateBookRequest,
) (*model.BookResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Get existing book
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	// Step 3: Update fields (only if provided)
	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
	}
	if req.Author != nil {
		book.Author = strings.TrimSpace(*req.Author)
	}
	if req.Genres != nil {
		book.Genres = normalizeGenres(req.Genres)
	}
	if req.Description != nil {
		book.Description = req.Description
	}
	if req.CoverURL != nil {
		book.CoverURL = req.CoverURL
	}
	if req.PageCount != nil {
		book.PageCount = *req.PageCount
	}

	book.UpdatedAt = time.Now()

	// Step 4: Save changes
	if err := s.bookRepo.Update(ctx, book); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, model.NewBookNotFoundError()
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	// Step 5: Invalidate cached detail
	s.invalidateDetail(ctx, id)

	return model.NewBookResponse(book), nil
}

// =====================================================
// ADMIN: DELETE BOOK
// =====================================================

func (s *bookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	if err := s.bookRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return model.NewBookNotFoundError()
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.invalidateDetail(ctx, id)

	// Shelves changed for every user who had the book, so all cached
	// recommendation sets are suspect
	if err := s.cache.DeletePattern(ctx, "recommendations:user:*"); err != nil {
		logger.Warn("failed to invalidate recommendation caches", map[string]interface{}{
			"book_id": id.String(),
			"error":   err.Error(),
		})
	}

	return nil
}

func (s *bookService) invalidateDetail(ctx context.Context, id uuid.UUID) {
	if err := s.cache.Delete(ctx, model.CacheKey(id)); err != nil {
		logger.Warn("failed to invalidate book cache", map[string]interface{}{
			"book_id": id.String(),
			"error":   err.Error(),
		})
	}
}

// normalizeGenres trims entries and drops empties and duplicates
func normalizeGenres(genres []string) []string {
	seen := make(map[string]struct{}, len(genres))
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		key := strings.ToLower(g)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, g)
	}
	return out
}
