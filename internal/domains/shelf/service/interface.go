package service

import (
	"context"

	"github.com/google/uuid"

	"readtrack-backend/internal/domains/shelf/model"
)

// ServiceInterface defines shelf service operations
type ServiceInterface interface {
	SetStatus(ctx context.Context, userID, bookID uuid.UUID, req model.SetStatusRequest) (*model.StatusResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) (*model.ShelfResponse, error)
	GetProgress(ctx context.Context, userID, bookID uuid.UUID) (*model.ProgressResponse, error)
	UpdateProgress(ctx context.Context, userID, bookID uuid.UUID, req model.UpdateProgressRequest) (*model.ProgressResponse, error)
}
