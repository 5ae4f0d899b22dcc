package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"readtrack-backend/internal/shared/response"
	"readtrack-backend/pkg/jwt"
)

const (
	// ContextUserIDKey is the gin context key holding the authenticated user ID
	ContextUserIDKey = "userID"
	// ContextUserRoleKey is the gin context key holding the authenticated user role
	ContextUserRoleKey = "userRole"
	// ContextUserEmailKey is the gin context key holding the authenticated user email
	ContextUserEmailKey = "userEmail"
)

// Auth validates the Bearer token and stores user identity in the context
func Auth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(c, "Authorization header must be in format: Bearer <token>")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Unauthorized(c, "Invalid token subject")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextUserRoleKey, claims.Role)
		c.Set(ContextUserEmailKey, claims.Email)

		c.Next()
	}
}

// OptionalAuth resolves identity when a valid Bearer token is present
// but lets anonymous requests through.
func OptionalAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		if userID, err := uuid.Parse(claims.UserID); err == nil {
			c.Set(ContextUserIDKey, userID)
			c.Set(ContextUserRoleKey, claims.Role)
			c.Set(ContextUserEmailKey, claims.Email)
		}

		c.Next()
	}
}

// GetUserID returns the authenticated user ID from the context.
// Only valid on routes behind the Auth middleware.
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// GetUserRole returns the authenticated user role from the context
func GetUserRole(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(string)
	return role, ok
}
