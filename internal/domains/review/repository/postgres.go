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

	"readtrack-backend/internal/domains/review/model"
	"readtrack-backend/internal/shared/storage"
	"readtrack-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

// =====================================================
// CREATE + RECOMPUTE
// =====================================================

func (r *postgresReviewRepository) CreateWithRecompute(
	ctx context.Context,
	review *model.Review,
) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Lock the book row so concurrent recomputes serialize
		if err := lockBook(ctx, tx, review.BookID); err != nil {
			return err
		}

		insert := `
			INSERT INTO reviews (id, book_id, user_id, rating, comment, liked_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, err := tx.Exec(ctx, insert,
			review.ID,
			review.BookID,
			review.UserID,
			review.Rating,
			review.Comment,
			pq.Array(review.LikedBy),
			review.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return model.ErrAlreadyReviewed
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		return recomputeBookRating(ctx, tx, review.BookID)
	})

	if err != nil {
		if errors.Is(err, model.ErrAlreadyReviewed) || errors.Is(err, model.ErrBookNotFound) {
			return err
		}
		return storage.WrapUnavailable(err)
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `
		SELECT id, book_id, user_id, rating, comment, liked_by, created_at
		FROM reviews
		WHERE id = $1
	`

	review := &model.Review{}
	var likedBy []string

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.BookID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		pq.Array(&likedBy),
		&review.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrReviewNotFound
		}
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to get review: %w", err))
	}

	review.LikedBy = likedBy
	return review, nil
}

// =====================================================
// DELETE + RECOMPUTE
// =====================================================

func (r *postgresReviewRepository) DeleteWithRecompute(
	ctx context.Context,
	id uuid.UUID,
	bookID uuid.UUID,
) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if err := lockBook(ctx, tx, bookID); err != nil {
			return err
		}

		result, err := tx.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrReviewNotFound
		}

		return recomputeBookRating(ctx, tx, bookID)
	})

	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) || errors.Is(err, model.ErrBookNotFound) {
			return err
		}
		return storage.WrapUnavailable(err)
	}

	return nil
}

// =====================================================
// TOGGLE LIKE
// =====================================================

func (r *postgresReviewRepository) ToggleLike(
	ctx context.Context,
	reviewID, userID uuid.UUID,
) (*model.Review, bool, error) {
	type toggleResult struct {
		review *model.Review
		liked  bool
	}

	result, err := database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (toggleResult, error) {
		var zero toggleResult

		// Row lock keeps the read-modify-write atomic
		query := `
			SELECT id, book_id, user_id, rating, comment, liked_by, created_at
			FROM reviews
			WHERE id = $1
			FOR UPDATE
		`

		review := &model.Review{}
		var likedBy []string

		err := tx.QueryRow(ctx, query, reviewID).Scan(
			&review.ID,
			&review.BookID,
			&review.UserID,
			&review.Rating,
			&review.Comment,
			pq.Array(&likedBy),
			&review.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return zero, model.ErrReviewNotFound
			}
			return zero, fmt.Errorf("failed to get review: %w", err)
		}

		review.LikedBy = likedBy
		liked := review.ToggleLike(userID)

		update := `UPDATE reviews SET liked_by = $2 WHERE id = $1`
		if _, err := tx.Exec(ctx, update, reviewID, pq.Array(review.LikedBy)); err != nil {
			return zero, fmt.Errorf("failed to update likes: %w", err)
		}

		return toggleResult{review: review, liked: liked}, nil
	})

	if err != nil {
		if errors.Is(err, model.ErrReviewNotFound) {
			return nil, false, model.ErrReviewNotFound
		}
		return nil, false, storage.WrapUnavailable(err)
	}

	return result.review, result.liked, nil
}

// =====================================================
// LIST BY BOOK
// =====================================================

func (r *postgresReviewRepository) ListByBook(
	ctx context.Context,
	bookID uuid.UUID,
) ([]ReviewWithAuthor, error) {
	query := `
		SELECT r.id, r.book_id, r.user_id, r.rating, r.comment, r.liked_by, r.created_at,
			u.full_name
		FROM reviews r
		INNER JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, bookID)
	if err != nil {
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to list reviews: %w", err))
	}
	defer rows.Close()

	var reviews []ReviewWithAuthor
	for rows.Next() {
		var item ReviewWithAuthor
		var likedBy []string

		err := rows.Scan(
			&item.Review.ID,
			&item.Review.BookID,
			&item.Review.UserID,
			&item.Review.Rating,
			&item.Review.Comment,
			pq.Array(&likedBy),
			&item.Review.CreatedAt,
			&item.AuthorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		item.Review.LikedBy = likedBy
		reviews = append(reviews, item)
	}

	return reviews, nil
}

// =====================================================
// HELPERS
// =====================================================

// lockBook takes a row lock on the book, failing when it does not exist
func lockBook(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) error {
	var id uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM books WHERE id = $1 FOR UPDATE`, bookID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrBookNotFound
		}
		return fmt.Errorf("failed to lock book: %w", err)
	}
	return nil
}

// recomputeBookRating rebuilds the aggregate from the full rating set
func recomputeBookRating(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) error {
	rows, err := tx.Query(ctx, `SELECT rating FROM reviews WHERE book_id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("failed to read ratings: %w", err)
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, rating)
	}
	rows.Close()

	average, count := model.ComputeAverage(ratings)

	update := `
		UPDATE books
		SET average_rating = $2, rating_count = $3, updated_at = NOW()
		WHERE id = $1
	`
	if _, err := tx.Exec(ctx, update, bookID, average, count); err != nil {
		return fmt.Errorf("failed to update book rating: %w", err)
	}

	return nil
}
