package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound = "BOK001"
	ErrCodeInvalidBook  = "BOK002"
)

// Errors
var (
	ErrBookNotFound = errors.New("book not found")
	ErrInvalidBook  = errors.New("invalid book data")
)

// BookError custom error type
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBookNotFoundError() *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewInvalidBookError(reason string) *BookError {
	return &BookError{
		Code:    ErrCodeInvalidBook,
		Message: fmt.Sprintf("Invalid book data: %s", reason),
		Err:     ErrInvalidBook,
	}
}
