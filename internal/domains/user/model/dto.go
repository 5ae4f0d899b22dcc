package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// AUTH REQUEST DTOs
// =====================================================

// RegisterRequest request to create an account
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
}

func (r *RegisterRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 72)),
		validation.Field(&r.FullName, validation.Required, validation.Length(1, 120)),
	)
}

// LoginRequest request to authenticate
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// =====================================================
// PROFILE REQUEST DTOs
// =====================================================

// UpdateProfileRequest request to update own profile.
// Nil fields are left untouched.
type UpdateProfileRequest struct {
	FullName       *string  `json:"full_name"`
	Bio            *string  `json:"bio"`
	AvatarURL      *string  `json:"avatar_url"`
	FavoriteGenres []string `json:"favorite_genres"`
}

func (r *UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FullName, validation.NilOrNotEmpty, validation.Length(1, 120)),
		validation.Field(&r.Bio, validation.Length(0, 1000)),
		validation.Field(&r.AvatarURL, is.URL),
		validation.Field(&r.FavoriteGenres, validation.Length(0, 20),
			validation.Each(validation.Required, validation.Length(1, 50))),
	)
}

// =====================================================
// ADMIN REQUEST DTOs
// =====================================================

// AdminListUsersRequest admin request to list users
type AdminListUsersRequest struct {
	Search *string `form:"search"`
	Page   int     `form:"page"`
	Limit  int     `form:"limit"`
}

func (r *AdminListUsersRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 50
	}
	return nil
}

// UpdateRoleRequest admin request to change a user's role
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (r *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role, validation.Required, validation.In(RoleUser, RoleAdmin)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// UserResponse public view of a user
type UserResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Role           string    `json:"role"`
	FavoriteGenres []string  `json:"favorite_genres"`
	Bio            *string   `json:"bio"`
	AvatarURL      *string   `json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUserResponse builds a UserResponse from the entity
func NewUserResponse(u *User) *UserResponse {
	genres := u.FavoriteGenres
	if genres == nil {
		genres = []string{}
	}
	return &UserResponse{
		ID:             u.ID,
		Email:          u.Email,
		FullName:       u.FullName,
		Role:           u.Role,
		FavoriteGenres: genres,
		Bio:            u.Bio,
		AvatarURL:      u.AvatarURL,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// AuthResponse response for register/login
type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

// ListUsersResponse admin response for user listing
type ListUsersResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationMeta `json:"pagination"`
}

// PaginationMeta pagination metadata
type PaginationMeta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// NewPaginationMeta builds pagination metadata
func NewPaginationMeta(page, limit, total int) PaginationMeta {
	totalPages := (total + limit - 1) / limit
	return PaginationMeta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
