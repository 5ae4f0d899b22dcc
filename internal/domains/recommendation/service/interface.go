package service

import (
	"context"

	"github.com/google/uuid"

	"readtrack-backend/internal/domains/recommendation/model"
)

// ServiceInterface defines recommendation service operations
type ServiceInterface interface {
	GetRecommendations(ctx context.Context, userID uuid.UUID) (*model.RecommendationsResponse, error)
}
