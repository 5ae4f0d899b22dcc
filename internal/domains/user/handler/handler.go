package handler

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/domains/user/service"
	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/internal/shared/storage"
)

// =====================================================
// USER HANDLER
// =====================================================

type UserHandler struct {
	userService service.ServiceInterface
}

func NewUserHandler(userService service.ServiceInterface) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// =====================================================
// AUTH ENDPOINTS
// =====================================================

// Register creates a new account
// POST /api/v1/auth/register
func (h *UserHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp)
}

// Login authenticates and returns a token pair
// POST /api/v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// PROFILE ENDPOINTS
// =====================================================

// GetProfile returns the caller's profile
// GET /api/v1/users/me
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// UpdateProfile updates the caller's profile
// PUT /api/v1/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// =====================================================
// ADMIN ENDPOINTS
// =====================================================

// AdminListUsers lists accounts with optional search
// GET /api/v1/admin/users
func (h *UserHandler) AdminListUsers(c *gin.Context) {
	var req model.AdminListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.userService.AdminListUsers(c.Request.Context(), req)
	if err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// AdminUpdateRole changes a user's role
// PUT /api/v1/admin/users/:id/role
func (h *UserHandler) AdminUpdateRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.userService.AdminUpdateRole(c.Request.Context(), userID, req); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Role updated successfully",
	})
}

// AdminDeleteUser deletes an account and everything it owns
// DELETE /api/v1/admin/users/:id
func (h *UserHandler) AdminDeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.AdminDeleteUser(c.Request.Context(), userID); err != nil {
		respondUserError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

// respondUserError maps user domain errors to HTTP responses
func respondUserError(c *gin.Context, err error) {
	if storage.IsUnavailable(err) {
		response.ServiceUnavailable(c, "Datastore is temporarily unavailable")
		return
	}

	if verr, ok := err.(validation.Errors); ok {
		response.ValidationError(c, verr)
		return
	}

	if userErr, ok := err.(*model.UserError); ok {
		switch userErr.Code {
		case model.ErrCodeUserNotFound:
			response.Error(c, http.StatusNotFound, userErr.Code, userErr.Message)
		case model.ErrCodeEmailTaken:
			response.Error(c, http.StatusConflict, userErr.Code, userErr.Message)
		case model.ErrCodeInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, userErr.Code, userErr.Message)
		case model.ErrCodeAccountDisabled:
			response.Error(c, http.StatusForbidden, userErr.Code, userErr.Message)
		case model.ErrCodeInvalidRole:
			response.Error(c, http.StatusBadRequest, userErr.Code, userErr.Message)
		default:
			response.InternalError(c, "An unexpected error occurred")
		}
		return
	}

	response.InternalError(c, "An unexpected error occurred")
}
