package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestComputeAverage(t *testing.T) {
	t.Run("EmptySet", func(t *testing.T) {
		avg, count := ComputeAverage(nil)
		assert.Equal(t, 0.0, avg)
		assert.Equal(t, 0, count)
	})

	t.Run("SingleRating", func(t *testing.T) {
		avg, count := ComputeAverage([]int{4})
		assert.Equal(t, 4.0, avg)
		assert.Equal(t, 1, count)
	})

	t.Run("ExactMean", func(t *testing.T) {
		avg, count := ComputeAverage([]int{5, 4})
		assert.Equal(t, 4.5, avg)
		assert.Equal(t, 2, count)
	})

	t.Run("RoundsToTwoDecimals", func(t *testing.T) {
		// 11/3 = 3.666... rounds to 3.67
		avg, count := ComputeAverage([]int{3, 4, 4})
		assert.Equal(t, 3.67, avg)
		assert.Equal(t, 3, count)
	})

	t.Run("MeanStaysAfterAddAndRemove", func(t *testing.T) {
		ratings := []int{5, 3}
		before, _ := ComputeAverage(ratings)

		// Add a rating, then recompute without it again
		withExtra := append(append([]int{}, ratings...), 1)
		mid, _ := ComputeAverage(withExtra)
		after, _ := ComputeAverage(ratings)

		assert.Equal(t, 4.0, before)
		assert.Equal(t, 3.0, mid)
		assert.Equal(t, before, after)
	})
}

func TestToggleLike(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	t.Run("LikeThenUnlikeRestoresState", func(t *testing.T) {
		review := &Review{LikedBy: []string{otherID.String()}}

		liked := review.ToggleLike(userID)
		assert.True(t, liked)
		assert.Equal(t, 2, review.LikeCount())
		assert.True(t, review.LikedByUser(userID))

		liked = review.ToggleLike(userID)
		assert.False(t, liked)
		assert.Equal(t, 1, review.LikeCount())
		assert.False(t, review.LikedByUser(userID))
		assert.True(t, review.LikedByUser(otherID))
	})

	t.Run("NoDuplicates", func(t *testing.T) {
		review := &Review{LikedBy: []string{}}
		review.ToggleLike(userID)
		review.ToggleLike(userID)
		review.ToggleLike(userID)
		assert.Equal(t, 1, review.LikeCount())
	})
}

func TestCreateReviewRequestValidate(t *testing.T) {
	comment := "a solid read"

	t.Run("Valid", func(t *testing.T) {
		req := CreateReviewRequest{Rating: 5, Comment: &comment}
		assert.NoError(t, req.Validate())
	})

	t.Run("RatingTooHigh", func(t *testing.T) {
		req := CreateReviewRequest{Rating: 6}
		assert.Error(t, req.Validate())
	})

	t.Run("RatingMissing", func(t *testing.T) {
		req := CreateReviewRequest{Rating: 0}
		assert.Error(t, req.Validate())
	})
}
