package repository

import (
	"context"

	"github.com/google/uuid"

	"readtrack-backend/internal/domains/book/model"
)

// BookRepository defines data access for the catalog
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	List(ctx context.Context, search *string, page, limit int) ([]*model.Book, int, error)

	// DeleteCascade removes the book together with its shelf entries and
	// reviews in one transaction.
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}
