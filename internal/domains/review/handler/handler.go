package handler

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readtrack-backend/internal/domains/review/model"
	"readtrack-backend/internal/domains/review/service"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/shared/storage"
)

// =====================================================
// REVIEW HANDLER
// =====================================================

type ReviewHandler struct {
	reviewService service.ServiceInterface
}

func NewReviewHandler(reviewService service.ServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// AddReview creates a review for a book
// POST /api/v1/reviews/book/:book_id
func (h *ReviewHandler) AddReview(c *gin.Context) {
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

	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviewService.AddReview(c.Request.Context(), userID, bookID, req)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// DeleteReview deletes a review; author or admin only
// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}
	role, _ := middleware.GetUserRole(c)

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), userID, role, reviewID); err != nil {
		respondReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}

// ToggleLike flips the caller's like on a review
// POST /api/v1/reviews/:id/like
func (h *ReviewHandler) ToggleLike(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid review ID")
		return
	}

	resp, err := h.reviewService.ToggleLike(c.Request.Context(), userID, reviewID)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ListBookReviews lists a book's reviews in creation order
// GET /api/v1/books/:id/reviews
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid book ID")
		return
	}

	// liked_by_me only carries meaning for an authenticated viewer
	var viewerID *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		viewerID = &userID
	}

	resp, err := h.reviewService.ListByBook(c.Request.Context(), bookID, viewerID)
	if err != nil {
		respondReviewError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// respondReviewError maps review domain errors to HTTP responses
func respondReviewError(c *gin.Context, err error) {
	if storage.IsUnavailable(err) {
		response.ServiceUnavailable(c, "Datastore is temporarily unavailable")
		return
	}

	if verr, ok := err.(validation.Errors); ok {
		response.ValidationError(c, verr)
		return
	}

	if reviewErr, ok := err.(*model.ReviewError); ok {
		switch reviewErr.Code {
		case model.ErrCodeReviewNotFound, model.ErrCodeBookNotFound:
			response.Error(c, http.StatusNotFound, reviewErr.Code, reviewErr.Message)
		case model.ErrCodeAlreadyReviewed:
			response.Error(c, http.StatusConflict, reviewErr.Code, reviewErr.Message)
		case model.ErrCodeForbidden:
			response.Error(c, http.StatusForbidden, reviewErr.Code, reviewErr.Message)
		case model.ErrCodeInvalidRating:
			response.Error(c, http.StatusBadRequest, reviewErr.Code, reviewErr.Message)
		default:
			response.InternalError(c, "An unexpected error occurred")
		}
		return
	}

	response.InternalError(c, "An unexpected error occurred")
}
