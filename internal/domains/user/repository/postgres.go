package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"readtrack-backend/internal/domains/user/model"
	"readtrack-backend/internal/shared/storage"
	"readtrack-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

const userColumns = `
	id, email, password_hash, full_name, role,
	favorite_genres, bio, avatar_url, is_active,
	created_at, updated_at
`

func scanUser(row pgx.Row) (*model.User, error) {
	user := &model.User{}
	var genres []string

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.Role,
		pq.Array(&genres),
		&user.Bio,
		&user.AvatarURL,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.FavoriteGenres = genres
	return user, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, email, password_hash, full_name, role,
			favorite_genres, bio, avatar_url, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.Role,
		pq.Array(user.FavoriteGenres),
		user.Bio,
		user.AvatarURL,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Check unique constraint violation on email
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.ErrEmailTaken
		}
		return storage.WrapUnavailable(fmt.Errorf("failed to create user: %w", err))
	}

	return nil
}

// =====================================================
// GET
// =====================================================

func (r *postgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to get user: %w", err))
	}

	return user, nil
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to get user by email: %w", err))
	}

	return user, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET full_name = $2,
			bio = $3,
			avatar_url = $4,
			favorite_genres = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		user.ID,
		user.FullName,
		user.Bio,
		user.AvatarURL,
		pq.Array(user.FavoriteGenres),
	)

	if err != nil {
		return storage.WrapUnavailable(fmt.Errorf("failed to update profile: %w", err))
	}

	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

func (r *postgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id, role)
	if err != nil {
		return storage.WrapUnavailable(fmt.Errorf("failed to update role: %w", err))
	}

	if result.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}

	return nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresUserRepository) List(
	ctx context.Context,
	search *string,
	page, limit int,
) ([]*model.User, int, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM users WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if search != nil && *search != "" {
		filter := fmt.Sprintf(" AND (email ILIKE $%d OR full_name ILIKE $%d)", argCount, argCount)
		query += filter
		countQuery += filter
		args = append(args, "%"+*search+"%")
		argCount++
	}

	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)

	listArgs := append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, storage.WrapUnavailable(fmt.Errorf("failed to list users: %w", err))
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storage.WrapUnavailable(fmt.Errorf("failed to count users: %w", err))
	}

	return users, total, nil
}

// =====================================================
// DELETE (CASCADE)
// =====================================================

func (r *postgresUserRepository) DeleteCascade(ctx context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	bookIDs, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) ([]uuid.UUID, error) {
		// Books whose ratings must be recomputed after the user's reviews go
		affected, err := r.ReviewedBookIDs(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE user_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to delete user reviews: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM shelf_entries WHERE user_id = $1`, id); err != nil {
			return nil, fmt.Errorf("failed to delete user shelf entries: %w", err)
		}

		// Drop the user's likes from other people's reviews
		removeLikes := `
			UPDATE reviews
			SET liked_by = array_remove(liked_by, $1::text)
			WHERE $1::text = ANY(liked_by)
		`
		if _, err := tx.Exec(ctx, removeLikes, id.String()); err != nil {
			return nil, fmt.Errorf("failed to remove user likes: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return nil, fmt.Errorf("failed to delete user: %w", err)
		}
		if result.RowsAffected() == 0 {
			return nil, model.ErrUserNotFound
		}

		if len(affected) > 0 {
			recompute := `
				UPDATE books
				SET average_rating = COALESCE(
						(SELECT ROUND(AVG(rating)::numeric, 2) FROM reviews WHERE book_id = books.id), 0),
					rating_count = (SELECT COUNT(*) FROM reviews WHERE book_id = books.id),
					updated_at = NOW()
				WHERE id = ANY($1)
			`
			if _, err := tx.Exec(ctx, recompute, affected); err != nil {
				return nil, fmt.Errorf("failed to recompute book ratings: %w", err)
			}
		}

		return affected, nil
	})

	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, storage.WrapUnavailable(err)
	}

	return bookIDs, nil
}

func (r *postgresUserRepository) ReviewedBookIDs(
	ctx context.Context,
	tx pgx.Tx,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, `SELECT book_id FROM reviews WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviewed books: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan book id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
