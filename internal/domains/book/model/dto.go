package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateBookRequest admin request to add a book
type CreateBookRequest struct {
	Title       string   `json:"title" binding:"required"`
	Author      string   `json:"author" binding:"required"`
	Genres      []string `json:"genres"`
	Description *string  `json:"description"`
	CoverURL    *string  `json:"cover_url"`
	PageCount   int      `json:"page_count"`
}

func (r *CreateBookRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Author, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Genres, validation.Length(0, 20),
			validation.Each(validation.Required, validation.Length(1, 50))),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.CoverURL, is.URL),
		validation.Field(&r.PageCount, validation.Min(0)),
	)
}

// UpdateBookRequest admin request to update a book.
// Nil fields are left untouched.
type UpdateBookRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Genres      []string `json:"genres"`
	Description *string  `json:"description"`
	CoverURL    *string  `json:"cover_url"`
	PageCount   *int     `json:"page_count"`
}

func (r *UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 300)),
		validation.Field(&r.Author, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Genres, validation.Length(0, 20),
			validation.Each(validation.Required, validation.Length(1, 50))),
		validation.Field(&r.Description, validation.Length(0, 5000)),
		validation.Field(&r.CoverURL, is.URL),
		validation.Field(&r.PageCount, validation.Min(0)),
	)
}

// ListBooksRequest request to browse the catalog
type ListBooksRequest struct {
	Search *string `form:"search"`
	Page   int     `form:"page"`
	Limit  int     `form:"limit"`
}

func (r *ListBooksRequest) Validate() error {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 || r.Limit > 100 {
		r.Limit = 20
	}
	return nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

// BookResponse public view of a book
type BookResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genres        []string  `json:"genres"`
	Description   *string   `json:"description"`
	CoverURL      *string   `json:"cover_url"`
	PageCount     int       `json:"page_count"`
	AverageRating float64   `json:"average_rating"`
	RatingCount   int       `json:"rating_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewBookResponse builds a BookResponse from the entity
func NewBookResponse(b *Book) *BookResponse {
	genres := b.Genres
	if genres == nil {
		genres = []string{}
	}
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genres:        genres,
		Description:   b.Description,
		CoverURL:      b.CoverURL,
		PageCount:     b.PageCount,
		AverageRating: b.AverageRating,
		RatingCount:   b.RatingCount,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ListBooksResponse response for catalog browsing
type ListBooksResponse struct {
	Books      []BookResponse `json:"books"`
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
