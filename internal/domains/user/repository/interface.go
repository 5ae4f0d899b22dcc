package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"readtrack-backend/internal/domains/user/model"
)

// UserRepository defines data access for user accounts
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	List(ctx context.Context, search *string, page, limit int) ([]*model.User, int, error)

	// DeleteCascade removes the user together with their shelf entries and
	// reviews, and recomputes ratings of every book the user had reviewed.
	// Runs in a single transaction and returns the affected book IDs.
	DeleteCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error)

	// ReviewedBookIDs returns the IDs of books the user has reviewed,
	// using the given transaction.
	ReviewedBookIDs(ctx context.Context, tx pgx.Tx, userID uuid.UUID) ([]uuid.UUID, error)
}
