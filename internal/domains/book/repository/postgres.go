package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"readtrack-backend/internal/domains/book/model"
	"readtrack-backend/internal/shared/storage"
	"readtrack-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) BookRepository {
	return &postgresBookRepository{pool: pool}
}

const bookColumns = `
	id, title, author, genres, description, cover_url,
	page_count, average_rating, rating_count,
	created_by, created_at, updated_at
`

func scanBook(row pgx.Row) (*model.Book, error) {
	book := &model.Book{}
	var genres []string

	err := row.Scan(
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
		return nil, err
	}

	book.Genres = genres
	return book, nil
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresBookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (
			id, title, author, genres, description, cover_url,
			page_count, average_rating, rating_count,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		pq.Array(book.Genres),
		book.Description,
		book.CoverURL,
		book.PageCount,
		book.AverageRating,
		book.RatingCount,
		book.CreatedBy,
		book.CreatedAt,
		book.UpdatedAt,
	)

	if err != nil {
		return storage.WrapUnavailable(fmt.Errorf("failed to create book: %w", err))
	}

	return nil
}

// =====================================================
// GET BY ID
// =====================================================

func (r *postgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	book, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, storage.WrapUnavailable(fmt.Errorf("failed to get book: %w", err))
	}

	return book, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresBookRepository) Update(ctx context.Context, book *model.Book) error {
	// Rating fields are owned by the review ledger and stay untouched here
	query := `
		UPDATE books
		SET title = $2,
			author = $3,
			genres = $4,
			description = $5,
			cover_url = $6,
			page_count = $7,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		pq.Array(book.Genres),
		book.Description,
		book.CoverURL,
		book.PageCount,
	)

	if err != nil {
		return storage.WrapUnavailable(fmt.Errorf("failed to update book: %w", err))
	}

	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// =====================================================
// LIST / SEARCH
// =====================================================

func (r *postgresBookRepository) List(
	ctx context.Context,
	search *string,
	page, limit int,
) ([]*model.Book, int, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM books WHERE 1=1`

	args := []interface{}{}
	argCount := 1

	if search != nil && *search != "" {
		// Match title, author, or any genre
		filter := fmt.Sprintf(
			" AND (title ILIKE $%d OR author ILIKE $%d OR EXISTS ("+
				"SELECT 1 FROM unnest(genres) g WHERE g ILIKE $%d))",
			argCount, argCount, argCount,
		)
		query += filter
		countQuery += filter
		args = append(args, "%"+*search+"%")
		argCount++
	}

	// Newest first
	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)

	listArgs := append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, listArgs...)
	if err != nil {
		return nil, 0, storage.WrapUnavailable(fmt.Errorf("failed to list books: %w", err))
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storage.WrapUnavailable(fmt.Errorf("failed to count books: %w", err))
	}

	return books, total, nil
}

// =====================================================
// DELETE (CASCADE)
// =====================================================

func (r *postgresBookRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	err := database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM reviews WHERE book_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete book reviews: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM shelf_entries WHERE book_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete book shelf entries: %w", err)
		}

		result, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete book: %w", err)
		}
		if result.RowsAffected() == 0 {
			return model.ErrBookNotFound
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return model.ErrBookNotFound
		}
		return storage.WrapUnavailable(err)
	}

	return nil
}
