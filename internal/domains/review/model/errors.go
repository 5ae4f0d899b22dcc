package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeReviewNotFound  = "REV001"
	ErrCodeAlreadyReviewed = "REV002"
	ErrCodeForbidden       = "REV003"
	ErrCodeBookNotFound    = "REV004"
	ErrCodeInvalidRating   = "REV005"
)

// Errors
var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("already reviewed this book")
	ErrForbidden       = errors.New("not allowed to modify this review")
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidRating   = errors.New("rating out of range")
)

// ReviewError custom error type
type ReviewError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReviewError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReviewError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewReviewNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeReviewNotFound,
		Message: "Review not found",
		Err:     ErrReviewNotFound,
	}
}

func NewAlreadyReviewedError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeAlreadyReviewed,
		Message: "You have already reviewed this book",
		Err:     ErrAlreadyReviewed,
	}
}

func NewForbiddenError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeForbidden,
		Message: "Only the author or an admin can delete a review",
		Err:     ErrForbidden,
	}
}

func NewBookNotFoundError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewInvalidRatingError() *ReviewError {
	return &ReviewError{
		Code:    ErrCodeInvalidRating,
		Message: fmt.Sprintf("Rating must be between %d and %d", MinRating, MaxRating),
		Err:     ErrInvalidRating,
	}
}
