package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	bookmodel "readtrack-backend/internal/domains/book/model"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// SetStatusRequest request to place or move a book on the shelf
type SetStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	CurrentPage *int   `json:"current_page"`
}

func (r *SetStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status, validation.Required,
			validation.In(string(StatusWantToRead), string(StatusReading), string(StatusRead))),
		validation.Field(&r.CurrentPage, validation.Min(0)),
	)
}

// UpdateProgressRequest request to update reading progress
type UpdateProgressRequest struct {
	Progress int `json:"progress"`
}

func (r *UpdateProgressRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Progress, validation.Min(0)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// ShelfEntryResponse a shelf entry with its book embedded
type ShelfEntryResponse struct {
	Book        bookmodel.BookResponse `json:"book"`
	Status      Status                 `json:"status"`
	CurrentPage int                    `json:"current_page"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// ShelfResponse the caller's whole shelf
type ShelfResponse struct {
	Entries []ShelfEntryResponse `json:"entries"`
}

// StatusResponse response after a set-status upsert
type StatusResponse struct {
	BookID      uuid.UUID `json:"book_id"`
	Status      Status    `json:"status"`
	CurrentPage int       `json:"current_page"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProgressResponse reading progress for one book
type ProgressResponse struct {
	Progress   int `json:"progress"`
	TotalPages int `json:"total_pages"`
}
