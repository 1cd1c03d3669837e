package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := NotFound("post not found")

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))

	wrapped := fmt.Errorf("find post: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad id"), KindValidation},
		{"wrapped conflict", fmt.Errorf("create: %w", Conflict("dup")), KindConflict},
		{"plain error", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusCode(KindValidation))
	assert.Equal(t, http.StatusUnauthorized, StatusCode(KindUnauthenticated))
	assert.Equal(t, http.StatusForbidden, StatusCode(KindForbidden))
	assert.Equal(t, http.StatusNotFound, StatusCode(KindNotFound))
	assert.Equal(t, http.StatusConflict, StatusCode(KindConflict))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(KindInternal))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, "internal server error", err.Message)
	assert.Contains(t, err.Error(), "connection reset")
}
