package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"bad values", BadValues("nope"), fiber.StatusBadRequest},
		{"not allowed", NotAllowed("nope"), fiber.StatusForbidden},
		{"not found", NotFound("nope"), fiber.StatusNotFound},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("inner")), fiber.StatusNotFound},
		{"fiber error", fiber.NewError(fiber.StatusUnauthorized, "nope"), fiber.StatusUnauthorized},
		{"plain error", errors.New("boom"), fiber.StatusInternalServerError},
		{"nil", nil, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestKindMatching(t *testing.T) {
	err := NotAllowed("user %s may not do this", "kim")
	assert.EqualError(t, err, "user kim may not do this")
	assert.True(t, IsKind(err, KindNotAllowed))
	assert.False(t, IsKind(err, KindNotFound))
	assert.True(t, errors.Is(err, &Error{Kind: KindNotAllowed}))
	assert.False(t, IsKind(errors.New("plain"), KindNotAllowed))
}
