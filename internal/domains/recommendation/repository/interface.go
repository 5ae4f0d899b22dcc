package repository

import (
	"context"

	"github.com/google/uuid"

	bookmodel "readtrack-backend/internal/domains/book/model"
)

// RecommendationRepository reads recommendation candidates from the catalog.
// Both queries exclude books already on the user's shelves and order by
// average_rating desc, rating_count desc, title asc, which keeps a run
// deterministic for a fixed data snapshot.
type RecommendationRepository interface {
	// ListByGenres returns unshelved books whose genres intersect the
	// given set.
	ListByGenres(ctx context.Context, userID uuid.UUID, genres []string, limit int) ([]bookmodel.Book, error)

	// ListTopRated returns unshelved books regardless of genre, skipping
	// the given IDs. Used to backfill a short genre pass.
	ListTopRated(ctx context.Context, userID uuid.UUID, exclude []uuid.UUID, limit int) ([]bookmodel.Book, error)
}
