package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"readtrack-backend/internal/shared/middleware"
	"readtrack-backend/internal/shared/response"
	"readtrack-backend/pkg/container"
)

// SetupRouter wires middleware and all API routes
func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")

	// Health
	v1.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			response.ServiceUnavailable(ctx, "Database unreachable")
			return
		}
		response.Success(ctx, http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	// Auth
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}

	// Public catalog; identity is optional and only affects liked_by_me
	books := v1.Group("/books")
	books.Use(middleware.OptionalAuth(c.JWTManager))
	{
		books.GET("", c.BookHandler.ListBooks)
		books.GET("/:id", c.BookHandler.GetBook)
		books.GET("/:id/reviews", c.ReviewHandler.ListBookReviews)
	}

	// Authenticated
	authed := v1.Group("")
	authed.Use(middleware.Auth(c.JWTManager))
	{
		authed.GET("/users/me", c.UserHandler.GetProfile)
		authed.PUT("/users/me", c.UserHandler.UpdateProfile)

		authed.POST("/shelf/:book_id", c.ShelfHandler.SetStatus)
		authed.GET("/shelf/mine", c.ShelfHandler.ListMine)
		authed.GET("/books/:id/progress", c.ShelfHandler.GetProgress)
		authed.PUT("/books/:id/progress", c.ShelfHandler.UpdateProgress)

		authed.POST("/reviews/book/:book_id", c.ReviewHandler.AddReview)
		authed.DELETE("/reviews/:id", c.ReviewHandler.DeleteReview)
		authed.POST("/reviews/:id/like", c.ReviewHandler.ToggleLike)

		authed.GET("/books/me/recommended", c.RecHandler.GetRecommendations)
	}

	// Admin
	admin := v1.Group("/admin")
	admin.Use(middleware.Auth(c.JWTManager), middleware.RequireAdmin())
	{
		admin.GET("/users", c.UserHandler.AdminListUsers)
		admin.PUT("/users/:id/role", c.UserHandler.AdminUpdateRole)
		admin.DELETE("/users/:id", c.UserHandler.AdminDeleteUser)

		admin.POST("/books", c.BookHandler.CreateBook)
		admin.PUT("/books/:id", c.BookHandler.UpdateBook)
		admin.DELETE("/books/:id", c.BookHandler.DeleteBook)
	}

	return router
}
