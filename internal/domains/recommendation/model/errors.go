package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeUserNotFound = "REC001"
)

// Errors
var (
	ErrUserNotFound = errors.New("user not found")
)

// RecommendationError custom error type
type RecommendationError struct {
	Code    string
	Message string
	Err     error
}

func (e *RecommendationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *RecommendationError) Unwrap() error {
	return e.Err
}

func NewUserNotFoundError() *RecommendationError {
	return &RecommendationError{
		Code:    ErrCodeUserNotFound,
		Message: "User not found",
		Err:     ErrUserNotFound,
	}
}
