package repository

import (
	"context"

	"github.com/google/uuid"

	bookmodel "readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/domains/shelf/model"
)

// EntryWithBook pairs a shelf entry with its catalog row
type EntryWithBook struct {
	Entry model.ShelfEntry
	Book  bookmodel.Book
}

// ShelfRepository defines data access for shelf entries
type ShelfRepository interface {
	// Upsert inserts or updates the (user, book) entry
	Upsert(ctx context.Context, entry *model.ShelfEntry) error

	Get(ctx context.Context, userID, bookID uuid.UUID) (*model.ShelfEntry, error)

	// ListByUser returns entries with their books, most recently updated first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]EntryWithBook, error)

	// UpdateProgress sets current_page on an existing entry
	UpdateProgress(ctx context.Context, userID, bookID uuid.UUID, page int) error
}
