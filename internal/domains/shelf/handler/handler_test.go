package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	bookmodel "readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/domains/shelf/handler"
	"readtrack-backend/internal/domains/shelf/model"
	"readtrack-backend/internal/shared/middleware"
)

// ===== MOCK SERVICE =====

type MockShelfService struct {
	mock.Mock
}

func (m *MockShelfService) SetStatus(ctx context.Context, userID, bookID uuid.UUID, req model.SetStatusRequest) (*model.StatusResponse, error) {
	args := m.Called(ctx, userID, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StatusResponse), args.Error(1)
}

func (m *MockShelfService) ListMine(ctx context.Context, userID uuid.UUID) (*model.ShelfResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShelfResponse), args.Error(1)
}

func (m *MockShelfService) GetProgress(ctx context.Context, userID, bookID uuid.UUID) (*model.ProgressResponse, error) {
	args := m.Called(ctx, userID, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProgressResponse), args.Error(1)
}

func (m *MockShelfService) UpdateProgress(ctx context.Context, userID, bookID uuid.UUID, req model.UpdateProgressRequest) (*model.ProgressResponse, error) {
	args := m.Called(ctx, userID, bookID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProgressResponse), args.Error(1)
}

// ===== ROUTER SETUP =====

func mockAuthMiddleware(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, userID)
		c.Set(middleware.ContextUserRoleKey, "user")
		c.Next()
	}
}

func setupRouter(mockService *MockShelfService, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewShelfHandler(mockService)

	router := gin.New()
	router.Use(mockAuthMiddleware(userID))
	router.POST("/shelf/:book_id", h.SetStatus)
	router.GET("/shelf/mine", h.ListMine)
	router.GET("/books/:id/progress", h.GetProgress)
	router.PUT("/books/:id/progress", h.UpdateProgress)
	return router
}

// ===== TESTS =====

func TestSetStatusHandler(t *testing.T) {
	userID := uuid.New()
	bookID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		mockService.On("SetStatus", mock.Anything, userID, bookID,
			mock.MatchedBy(func(req model.SetStatusRequest) bool { return req.Status == "READING" })).
			Return(&model.StatusResponse{
				BookID:      bookID,
				Status:      model.StatusReading,
				CurrentPage: 0,
				UpdatedAt:   time.Now(),
			}, nil).Once()

		body, _ := json.Marshal(gin.H{"status": "READING"})
		req := httptest.NewRequest(http.MethodPost, "/shelf/"+bookID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"READING"`)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidBookID", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		body, _ := json.Marshal(gin.H{"status": "READING"})
		req := httptest.NewRequest(http.MethodPost, "/shelf/not-a-uuid", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "SetStatus")
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		mockService.On("SetStatus", mock.Anything, userID, bookID, mock.Anything).
			Return(nil, model.NewInvalidStatusError("DROPPED")).Once()

		body, _ := json.Marshal(gin.H{"status": "DROPPED"})
		req := httptest.NewRequest(http.MethodPost, "/shelf/"+bookID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), model.ErrCodeInvalidStatus)
	})

	t.Run("MissingBook", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		mockService.On("SetStatus", mock.Anything, userID, bookID, mock.Anything).
			Return(nil, model.NewBookNotFoundError()).Once()

		body, _ := json.Marshal(gin.H{"status": "READ"})
		req := httptest.NewRequest(http.MethodPost, "/shelf/"+bookID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListMineHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		mockService.On("ListMine", mock.Anything, userID).
			Return(&model.ShelfResponse{
				Entries: []model.ShelfEntryResponse{
					{
						Book:        bookmodel.BookResponse{ID: uuid.New(), Title: "Dune"},
						Status:      model.StatusRead,
						CurrentPage: 400,
						UpdatedAt:   time.Now(),
					},
				},
			}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/shelf/mine", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Dune")
	})
}

func TestProgressHandlers(t *testing.T) {
	userID := uuid.New()
	bookID := uuid.New()

	t.Run("GetSuccess", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		mockService.On("GetProgress", mock.Anything, userID, bookID).
			Return(&model.ProgressResponse{Progress: 42, TotalPages: 300}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/books/"+bookID.String()+"/progress", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"progress":42`)
		assert.Contains(t, w.Body.String(), `"total_pages":300`)
	})

	t.Run("GetNotOnShelf", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		mockService.On("GetProgress", mock.Anything, userID, bookID).
			Return(nil, model.NewEntryNotFoundError()).Once()

		req := httptest.NewRequest(http.MethodGet, "/books/"+bookID.String()+"/progress", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), model.ErrCodeEntryNotFound)
	})

	t.Run("UpdateSuccess", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		mockService.On("UpdateProgress", mock.Anything, userID, bookID,
			model.UpdateProgressRequest{Progress: 100}).
			Return(&model.ProgressResponse{Progress: 100, TotalPages: 300}, nil).Once()

		body, _ := json.Marshal(gin.H{"progress": 100})
		req := httptest.NewRequest(http.MethodPut, "/books/"+bookID.String()+"/progress", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"progress":100`)
	})

	t.Run("UpdateNotOnShelf", func(t *testing.T) {
		mockService := new(MockShelfService)
		router := setupRouter(mockService, userID)

		mockService.On("UpdateProgress", mock.Anything, userID, bookID, mock.Anything).
			Return(nil, model.NewEntryNotFoundError()).Once()

		body, _ := json.Marshal(gin.H{"progress": 10})
		req := httptest.NewRequest(http.MethodPut, "/books/"+bookID.String()+"/progress", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
