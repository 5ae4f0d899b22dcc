package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeEntryNotFound = "SHF001"
	ErrCodeInvalidStatus = "SHF002"
	ErrCodeBookNotFound  = "SHF003"
)

// Errors
var (
	ErrEntryNotFound = errors.New("shelf entry not found")
	ErrInvalidStatus = errors.New("invalid shelf status")
	ErrBookNotFound  = errors.New("book not found")
)

// ShelfError custom error type
type ShelfError struct {
	Code    string
	Message string
	Err     error
}

func (e *ShelfError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ShelfError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewEntryNotFoundError() *ShelfError {
	return &ShelfError{
		Code:    ErrCodeEntryNotFound,
		Message: "Book is not on your shelf",
		Err:     ErrEntryNotFound,
	}
}

func NewInvalidStatusError(raw string) *ShelfError {
	return &ShelfError{
		Code:    ErrCodeInvalidStatus,
		Message: fmt.Sprintf("Invalid shelf status: %s", raw),
		Err:     ErrInvalidStatus,
	}
}

func NewBookNotFoundError() *ShelfError {
	return &ShelfError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}
