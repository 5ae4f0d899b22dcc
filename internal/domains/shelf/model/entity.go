package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is a shelf reading status
type Status string

const (
	StatusWantToRead Status = "WANT_TO_READ"
	StatusReading    Status = "READING"
	StatusRead       Status = "READ"
)

// ParseStatus validates a raw status string.
// Transitions between statuses are unrestricted.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusWantToRead, StatusReading, StatusRead:
		return Status(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ShelfEntry represents one (user, book) shelf record
type ShelfEntry struct {
	UserID      uuid.UUID `json:"user_id"`
	BookID      uuid.UUID `json:"book_id"`
	Status      Status    `json:"status"`
	CurrentPage int       `json:"current_page"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClampPage bounds page to [0, pageCount]. A pageCount of zero means
// the book's length is unknown and only the lower bound applies.
func ClampPage(page, pageCount int) int {
	if page < 0 {
		return 0
	}
	if pageCount > 0 && page > pageCount {
		return pageCount
	}
	return page
}
