package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/domains/book/service"
)

// ===== MOCKS =====

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) Create(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Book), args.Error(1)
}

func (m *MockBookRepository) Update(ctx context.Context, book *model.Book) error {
	args := m.Called(ctx, book)
	return args.Error(0)
}

func (m *MockBookRepository) List(ctx context.Context, search *string, page, limit int) ([]*model.Book, int, error) {
	args := m.Called(ctx, search, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Book), args.Int(1), args.Error(2)
}

func (m *MockBookRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCache) DeletePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// ===== TESTS =====

func TestGetBook(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()
	cacheKey := model.CacheKey(bookID)

	t.Run("CacheMissReadsRepoAndCaches", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		svc := service.NewBookService(bookRepo, mockCache)

		mockCache.On("Get", mock.Anything, cacheKey, mock.Anything).Return(false, nil).Once()
		bookRepo.On("GetByID", mock.Anything, bookID).
			Return(&model.Book{ID: bookID, Title: "Dune", PageCount: 400}, nil).Once()
		mockCache.On("Set", mock.Anything, cacheKey, mock.Anything, model.DetailCacheTTL).
			Return(nil).Once()

		resp, err := svc.GetBook(ctx, bookID)

		assert.NoError(t, err)
		assert.Equal(t, "Dune", resp.Title)
		mockCache.AssertExpectations(t)
	})

	t.Run("CacheHitSkipsRepo", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		svc := service.NewBookService(bookRepo, mockCache)

		mockCache.On("Get", mock.Anything, cacheKey, mock.Anything).
			Run(func(args mock.Arguments) {
				dest := args.Get(2).(*model.BookResponse)
				*dest = model.BookResponse{ID: bookID, Title: "Cached Dune"}
			}).Return(true, nil).Once()

		resp, err := svc.GetBook(ctx, bookID)

		assert.NoError(t, err)
		assert.Equal(t, "Cached Dune", resp.Title)
		bookRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("NotFound", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		svc := service.NewBookService(bookRepo, mockCache)

		mockCache.On("Get", mock.Anything, cacheKey, mock.Anything).Return(false, nil).Once()
		bookRepo.On("GetByID", mock.Anything, bookID).Return(nil, model.ErrBookNotFound).Once()

		_, err := svc.GetBook(ctx, bookID)

		var bookErr *model.BookError
		assert.ErrorAs(t, err, &bookErr)
		assert.Equal(t, model.ErrCodeBookNotFound, bookErr.Code)
	})
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()
	adminID := uuid.New()

	t.Run("NormalizesGenresAndZeroesRatings", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		svc := service.NewBookService(bookRepo, mockCache)

		bookRepo.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Book) bool {
			return b.Title == "Dune" &&
				len(b.Genres) == 2 && b.Genres[0] == "scifi" && b.Genres[1] == "classic" &&
				b.AverageRating == 0 && b.RatingCount == 0 &&
				b.CreatedBy == adminID
		})).Return(nil).Once()

		resp, err := svc.CreateBook(ctx, adminID, model.CreateBookRequest{
			Title:     "  Dune ",
			Author:    "Frank Herbert",
			Genres:    []string{"scifi", " scifi", "", "classic"},
			PageCount: 412,
		})

		assert.NoError(t, err)
		assert.Equal(t, "Dune", resp.Title)
		bookRepo.AssertExpectations(t)
	})

	t.Run("MissingTitle", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		svc := service.NewBookService(bookRepo, mockCache)

		_, err := svc.CreateBook(ctx, adminID, model.CreateBookRequest{Author: "Anonymous"})

		assert.Error(t, err)
		bookRepo.AssertNotCalled(t, "Create")
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	bookID := uuid.New()

	t.Run("InvalidatesDetailAndRecommendations", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		svc := service.NewBookService(bookRepo, mockCache)

		bookRepo.On("DeleteCascade", mock.Anything, bookID).Return(nil).Once()
		mockCache.On("Delete", mock.Anything, []string{model.CacheKey(bookID)}).Return(nil).Once()
		mockCache.On("DeletePattern", mock.Anything, "recommendations:user:*").Return(nil).Once()

		err := svc.DeleteBook(ctx, bookID)

		assert.NoError(t, err)
		mockCache.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		mockCache := new(MockCache)
		svc := service.NewBookService(bookRepo, mockCache)

		bookRepo.On("DeleteCascade", mock.Anything, bookID).Return(model.ErrBookNotFound).Once()

		err := svc.DeleteBook(ctx, bookID)

		var bookErr *model.BookError
		assert.ErrorAs(t, err, &bookErr)
		assert.Equal(t, model.ErrCodeBookNotFound, bookErr.Code)
	})
}
