package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"readtrack-backend/internal/domains/shelf/model"
	"readtrack-backend/internal/shared/storage"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresShelfRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresShelfRepository(pool *pgxpool.Pool) ShelfRepository {
	return &postgresShelfRepository{pool: pool}
}

// =====================================================
// UPSERT
// =====================================================

func (r *postgresShelfRepository) Upsert(ctx context.Context, entry *model.ShelfEntry) error {
	// One entry per (user, book); repeating the call updates in place
	query := `
		INSERT INTO shelf_entries (user_id, book_id, status, current_page, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, book_id)
		DO UPDATE SET status = EXCLUDED.status,
			current_page = EXCLUDED.current_page,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		entry.UserID,
		entry.BookID,
		string(entry.Status),
		entry.CurrentPage,
		entry.UpdatedAt,
	)

	if err != nil {
		return storage.WrapUnavailable(fmt.Errorf("failed to upsert shelf entry: %w", err))
	}

	return nil
}

// =====================================================
// GET
// =====================================================

func (r *postgresShelfRepository) Get(
	ctx context.Context,
	userID, bookID uuid.UUID,
) (*model.ShelfEntry, error) {
	query := `
		SELECT user_id, book_id, status, current_page, updated_at
		FROM shelf_entries
		WHERE user_id = $1 AND book_id = $2
	`

	entry := &model.ShelfEntry{}
	var status string

	err := r.pool.QueryRow(ctx, query, userID, bookID).Scan(
		&entry.UserID,
		&entry.BookID,
		&status,
		&entry.CurrentPage,
		&entry.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to get shelf entry: %w", err))
	}

	entry.Status = model.Status(status)
	return entry, nil
}

// =====================================================
// LIST BY USER
// =====================================================

func (r *postgresShelfRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]EntryWithBook, error) {
	query := `
		SELECT
			s.user_id, s.book_id, s.status, s.current_page, s.updated_at,
			b.id, b.title, b.author, b.genres, b.description, b.cover_url,
			b.page_count, b.average_rating, b.rating_count,
			b.created_by, b.created_at, b.updated_at
		FROM shelf_entries s
		INNER JOIN books b ON b.id = s.book_id
		WHERE s.user_id = $1
		ORDER BY s.updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to list shelf: %w", err))
	}
	defer rows.Close()

	var entries []EntryWithBook
	for rows.Next() {
		var item EntryWithBook
		var status string
		var genres []string

		err := rows.Scan(
			&item.Entry.UserID,
			&item.Entry.BookID,
			&status,
			&item.Entry.CurrentPage,
			&item.Entry.UpdatedAt,
			&item.Book.ID,
			&item.Book.Title,
			&item.Book.Author,
			pq.Array(&genres),
			&item.Book.Description,
			&item.Book.CoverURL,
			&item.Book.PageCount,
			&item.Book.AverageRating,
			&item.Book.RatingCount,
			&item.Book.CreatedBy,
			&item.Book.CreatedAt,
			&item.Book.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shelf entry: %w", err)
		}

		item.Entry.Status = model.Status(status)
		item.Book.Genres = genres
		entries = append(entries, item)
	}

	return entries, nil
}

// =====================================================
// UPDATE PROGRESS
// =====================================================

func (r *postgresShelfRepository) UpdateProgress(
	ctx context.Context,
	userID, bookID uuid.UUID,
	page int,
) error {
	query := `
		UPDATE shelf_entries
		SET current_page = $3, updated_at = NOW()
		WHERE user_id = $1 AND book_id = $2
	`

	result, err := r.pool.Exec(ctx, query, userID, bookID, page)
	if err != nil {
		return storage.WrapUnavailable(fmt.Errorf("failed to update progress: %w", err))
	}

	if result.RowsAffected() == 0 {
		return model.ErrEntryNotFound
	}

	return nil
}
