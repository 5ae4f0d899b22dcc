package handler

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/domains/book/service"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/shared/storage"
)

// =====================================================
// BOOK HANDLER
// =====================================================

type BookHandler struct {
	bookService service.ServiceInterface
}

func NewBookHandler(bookService service.ServiceInterface) *BookHandler {
	return &BookHandler{
		bookService: bookService,
	}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListBooks browses the catalog with optional search
// GET /api/v1/books
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req model.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookService.ListBooks(c.Request.Context(), req)
	if err != nil {
		respondBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetBook returns a book detail
// GET /api/v1/books/:id
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	resp, err := h.bookService.GetBook(c.Request.Context(), bookID)
	if err != nil {
		respondBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// CreateBook adds a book to the catalog
// POST /api/v1/admin/books
func (h *BookHandler) CreateBook(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookService.CreateBook(c.Request.Context(), adminID, req)
	if err != nil {
		respondBookError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// UpdateBook updates catalog fields
// PUT /api/v1/admin/books/:id
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.bookService.UpdateBook(c.Request.Context(), bookID, req)
	if err != nil {
		respondBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// DeleteBook removes a book and everything attached to it
// DELETE /api/v1/admin/books/:id
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), bookID); err != nil {
		respondBookError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Book deleted successfully",
	})
}

// respondBookError maps book domain errors to HTTP responses
func respondBookError(c *gin.Context, err error) {
	if storage.IsUnavailable(err) {
		response.ServiceUnavailable(c, "Datastore is temporarily unavailable")
		return
	}

	if verr, ok := err.(validation.Errors); ok {
		response.ValidationError(c, verr)
		return
	}

	if bookErr, ok := err.(*model.BookError); ok {
		switch bookErr.Code {
		case model.ErrCodeBookNotFound:
			response.Error(c, http.StatusNotFound, bookErr.Code, bookErr.Message)
		case model.ErrCodeInvalidBook:
			response.Error(c, http.StatusBadRequest, bookErr.Code, bookErr.Message)
		default:
			response.InternalError(c, "An unexpected error occurred")
		}
		return
	}

	response.InternalError(c, "An unexpected error occurred")
}
