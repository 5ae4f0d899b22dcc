package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	bookmodel "readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/shared/storage"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRecommendationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRecommendationRepository(pool *pgxpool.Pool) RecommendationRepository {
	return &postgresRecommendationRepository{pool: pool}
}

const candidateColumns = `
	b.id, b.title, b.author, b.genres, b.description, b.cover_url,
	b.page_count, b.average_rating, b.rating_count,
	b.created_by, b.created_at, b.updated_at
`

const notShelved = `
	NOT EXISTS (
		SELECT 1 FROM shelf_entries s
		WHERE s.user_id = $1 AND s.book_id = b.id
	)
`

func (r *postgresRecommendationRepository) ListByGenres(
	ctx context.Context,
	userID uuid.UUID,
	genres []string,
	limit int,
) ([]bookmodel.Book, error) {
	query := `
		SELECT ` + candidateColumns + `
		FROM books b
		WHERE b.genres && $2::text[]
		AND ` + notShelved + `
		ORDER BY b.average_rating DESC, b.rating_count DESC, b.title ASC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, userID, pq.Array(genres), limit)
	if err != nil {
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to list genre candidates: %w", err))
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func (r *postgresRecommendationRepository) ListTopRated(
	ctx context.Context,
	userID uuid.UUID,
	exclude []uuid.UUID,
	limit int,
) ([]bookmodel.Book, error) {
	if exclude == nil {
		exclude = []uuid.UUID{}
	}

	query := `
		SELECT ` + candidateColumns + `
		FROM books b
		WHERE b.id != ALL($2)
		AND ` + notShelved + `
		ORDER BY b.average_rating DESC, b.rating_count DESC, b.title ASC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, userID, exclude, limit)
	if err != nil {
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to list top rated candidates: %w", err))
	}
	defer rows.Close()

	return scanCandidates(rows)
}

func scanCandidates(rows pgx.Rows) ([]bookmodel.Book, error) {
	var books []bookmodel.Book
	for rows.Next() {
		var book bookmodel.Book
		var genres []string

		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			pq.Array(&genres),
			&book.Description,
			&book.CoverURL,
			&book.PageCount,
			&book.AverageRating,
			&book.RatingCount,
			&book.CreatedBy,
			&book.CreatedAt,
			&book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}

		book.Genres = genres
		books = append(books, book)
	}

	return books, nil
}
