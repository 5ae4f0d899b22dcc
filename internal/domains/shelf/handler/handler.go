package handler

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readtrack-backend/internal/domains/shelf/model"
	"readtrack-backend/internal/domains/shelf/service"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/shared/storage"
)

// =====================================================
// SHELF HANDLER
// =====================================================

type ShelfHandler struct {
	shelfService service.ServiceInterface
}

func NewShelfHandler(shelfService service.ServiceInterface) *ShelfHandler {
	return &ShelfHandler{
		shelfService: shelfService,
	}
}

// SetStatus places or moves a book on the caller's shelf
// POST /api/v1/shelf/:book_id
func (h *ShelfHandler) SetStatus(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shelfService.SetStatus(c.Request.Context(), userID, bookID, req)
	if err != nil {
		respondShelfError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListMine returns the caller's shelf, most recently updated first
// GET /api/v1/shelf/mine
func (h *ShelfHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.shelfService.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondShelfError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// GetProgress returns reading progress for a shelved book
// GET /api/v1/books/:id/progress
func (h *ShelfHandler) GetProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	resp, err := h.shelfService.GetProgress(c.Request.Context(), userID, bookID)
	if err != nil {
		respondShelfError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateProgress updates reading progress for a shelved book
// PUT /api/v1/books/:id/progress
func (h *ShelfHandler) UpdateProgress(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	var req model.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.shelfService.UpdateProgress(c.Request.Context(), userID, bookID, req)
	if err != nil {
		respondShelfError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// respondShelfError maps shelf domain errors to HTTP responses
func respondShelfError(c *gin.Context, err error) {
	if storage.IsUnavailable(err) {
		response.ServiceUnavailable(c, "Datastore is temporarily unavailable")
		return
	}

	if verr, ok := err.(validation.Errors); ok {
		response.ValidationError(c, verr)
		return
	}

	if shelfErr, ok := err.(*model.ShelfError); ok {
		switch shelfErr.Code {
		case model.ErrCodeEntryNotFound, model.ErrCodeBookNotFound:
			response.Error(c, http.StatusNotFound, shelfErr.Code, shelfErr.Message)
		case model.ErrCodeInvalidStatus:
			response.Error(c, http.StatusBadRequest, shelfErr.Code, shelfErr.Message)
		default:
			response.InternalError(c, "An unexpected error occurred")
		}
		return
	}

	response.InternalError(c, "An unexpected error occurred")
}
