package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	bookmodel "readtrack-backend/internal/domains/book/model"
	recmodel "readtrack-backend/internal/domains/recommendation/model"
	"readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/domains/user/repository"
	"readtrack-backend/pkg/cache"
	"readtrack-backend/pkg/jwt"
	"readtrack-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type userService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
	cache      cache.Cache
}

func NewUserService(
	userRepo repository.UserRepository,
	jwtManager *jwt.Manager,
	cacheClient cache.Cache,
) ServiceInterface {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		cache:      cacheClient,
	}
}

// =====================================================
// REGISTER
// =====================================================

func (s *userService) Register(
	ctx context.Context,
	req model.RegisterRequest,
) (*model.AuthResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Step 3: Create user entity
	user := &model.User{
		ID:             uuid.New(),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   string(hash),
		FullName:       strings.TrimSpace(req.FullName),
		Role:           model.RoleUser,
		FavoriteGenres: []string{},
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	// Step 4: Save to database
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return nil, model.NewEmailTakenError()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Step 5: Issue tokens
	return s.buildAuthResponse(user)
}

// =====================================================
// LOGIN
// =====================================================

func (s *userService) Login(
	ctx context.Context,
	req model.LoginRequest,
) (*model.AuthResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Look up user
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Same error as wrong password so emails cannot be probed
			return nil, model.NewInvalidCredentialsError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Step 3: Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.NewInvalidCredentialsError()
	}

	if !user.IsActive {
		return nil, model.NewAccountDisabledError()
	}

	// Step 4: Issue tokens
	return s.buildAuthResponse(user)
}

func (s *userService) buildAuthResponse(user *model.User) (*model.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.AuthResponse{
		User:         model.NewUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// =====================================================
// PROFILE
// =====================================================

func (s *userService) GetProfile(
	ctx context.Context,
	userID uuid.UUID,
) (*model.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(
	ctx context.Context,
	userID uuid.UUID,
	req model.UpdateProfileRequest,
) (*model.UserResponse, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Get existing user
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	// Step 3: Update fields (only if provided)
	genresChanged := false
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}
	if req.FavoriteGenres != nil {
		user.FavoriteGenres = req.FavoriteGenres
		genresChanged = true
	}

	user.UpdatedAt = time.Now()

	// Step 4: Save changes
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	// Step 5: Changed favourites make cached recommendations stale
	if genresChanged {
		if err := s.cache.Delete(ctx, recmodel.CacheKey(userID)); err != nil {
			logger.Warn("failed to invalidate recommendation cache", map[string]interface{}{
				"user_id": userID.String(),
				"error":   err.Error(),
			})
		}
	}

	return model.NewUserResponse(user), nil
}

// =====================================================
// ADMIN: LIST USERS
// =====================================================

func (s *userService) AdminListUsers(
	ctx context.Context,
	req model.AdminListUsersRequest,
) (*model.ListUsersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	users, total, err := s.userRepo.List(ctx, req.Search, req.Page, req.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]model.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, *model.NewUserResponse(user))
	}

	return &model.ListUsersResponse{
		Users:      responses,
		Pagination: model.NewPaginationMeta(req.Page, req.Limit, total),
	}, nil
}

// =====================================================
// ADMIN: UPDATE ROLE
// =====================================================

func (s *userService) AdminUpdateRole(
	ctx context.Context,
	userID uuid.UUID,
	req model.UpdateRoleRequest,
) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if !model.IsValidRole(req.Role) {
		return model.NewInvalidRoleError(req.Role)
	}

	if err := s.userRepo.UpdateRole(ctx, userID, req.Role); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to update role: %w", err)
	}

	return nil
}

// =====================================================
// ADMIN: DELETE USER
// =====================================================

func (s *userService) AdminDeleteUser(ctx context.Context, userID uuid.UUID) error {
	affectedBooks, err := s.userRepo.DeleteCascade(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	// Invalidate caches touched by the cascade
	keys := []string{recmodel.CacheKey(userID)}
	for _, bookID := range affectedBooks {
		keys = append(keys, bookmodel.CacheKey(bookID))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("failed to invalidate caches after user deletion", map[string]interface{}{
			"user_id": userID.String(),
			"error":   err.Error(),
		})
	}

	return nil
}
