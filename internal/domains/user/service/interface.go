package service

import (
	"context"

	"github.com/google/uuid"

	"readtrack-backend/internal/domains/user/model"
)

// ServiceInterface defines user service operations
type ServiceInterface interface {
	// Auth
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)

	// Profile
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (*model.UserResponse, error)

	// Admin
	AdminListUsers(ctx context.Context, req model.AdminListUsersRequest) (*model.ListUsersResponse, error)
	AdminUpdateRole(ctx context.Context, userID uuid.UUID, req model.UpdateRoleRequest) error
	AdminDeleteUser(ctx context.Context, userID uuid.UUID) error
}
