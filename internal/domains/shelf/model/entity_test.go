package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	t.Run("KnownStatuses", func(t *testing.T) {
		for _, raw := range []string{"WANT_TO_READ", "READING", "READ"} {
			status, err := ParseStatus(raw)
			assert.NoError(t, err)
			assert.Equal(t, Status(raw), status)
		}
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		_, err := ParseStatus("FINISHED")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		_, err := ParseStatus("reading")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestClampPage(t *testing.T) {
	t.Run("WithinBounds", func(t *testing.T) {
		assert.Equal(t, 50, ClampPage(50, 100))
	})

	t.Run("AbovePageCount", func(t *testing.T) {
		assert.Equal(t, 100, ClampPage(150, 100))
	})

	t.Run("Negative", func(t *testing.T) {
		assert.Equal(t, 0, ClampPage(-5, 100))
	})

	t.Run("UnknownPageCountOnlyLowerBound", func(t *testing.T) {
		assert.Equal(t, 9999, ClampPage(9999, 0))
		assert.Equal(t, 0, ClampPage(-1, 0))
	})
}

func TestSetStatusRequestValidate(t *testing.T) {
	page := 10

	t.Run("Valid", func(t *testing.T) {
		req := SetStatusRequest{Status: "READING", CurrentPage: &page}
		assert.NoError(t, req.Validate())
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		req := SetStatusRequest{Status: "DROPPED"}
		assert.Error(t, req.Validate())
	})

	t.Run("NegativePage", func(t *testing.T) {
		negative := -1
		req := SetStatusRequest{Status: "READING", CurrentPage: &negative}
		assert.Error(t, req.Validate())
	})
}
