package service

import (
	"context"

	"github.com/google/uuid"

	"readtrack-backend/internal/domains/book/model"
)

// ServiceInterface defines book service operations
type ServiceInterface interface {
	ListBooks(ctx context.Context, req model.ListBooksRequest) (*model.ListBooksResponse, error)
	GetBook(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)

	// Admin
	CreateBook(ctx context.Context, adminID uuid.UUID, req model.CreateBookRequest) (*model.BookResponse, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.BookResponse, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}
