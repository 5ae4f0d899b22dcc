package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/domains/recommendation/model"
	"readtrack-backend/internal/domains/recommendation/service"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/shared/storage"
)

// =====================================================
// RECOMMENDATION HANDLER
// =====================================================

type RecommendationHandler struct {
	recService service.ServiceInterface
}

func NewRecommendationHandler(recService service.ServiceInterface) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
	}
}

// GetRecommendations returns the caller's recommended books
// GET /api/v1/books/me/recommended
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.recService.GetRecommendations(c.Request.Context(), userID)
	if err != nil {
		respondRecommendationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// respondRecommendationError maps recommendation errors to HTTP responses
func respondRecommendationError(c *gin.Context, err error) {
	if storage.IsUnavailable(err) {
		response.ServiceUnavailable(c, "Datastore is temporarily unavailable")
		return
	}

	if recErr, ok := err.(*model.RecommendationError); ok {
		switch recErr.Code {
		case model.ErrCodeUserNotFound:
			response.Error(c, http.StatusNotFound, recErr.Code, recErr.Message)
		default:
			response.InternalError(c, "An unexpected error occurred")
		}
		return
	}

	response.InternalError(c, "An unexpected error occurred")
}
