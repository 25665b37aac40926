package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	t.Parallel()

	err := NewNotFoundError("Post", 42)
	assert.True(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(err, CodeConflict))

	// Codes survive wrapping.
	wrapped := fmt.Errorf("listing feed: %w", err)
	assert.True(t, HasCode(wrapped, CodeNotFound))

	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
	assert.False(t, HasCode(nil, CodeNotFound))
}

func TestStatusForCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code   string
		status int
	}{
		{CodeNotFound, fiber.StatusNotFound},
		{CodeAlreadyExists, fiber.StatusConflict},
		{CodeConflict, fiber.StatusConflict},
		{CodeAlreadyRemoved, fiber.StatusNotFound},
		{CodeInvalidArgument, fiber.StatusBadRequest},
		{CodeUnauthorized, fiber.StatusUnauthorized},
		{CodeExternalService, fiber.StatusBadGateway},
		{CodeInternal, fiber.StatusInternalServerError},
		{"SOMETHING_ELSE", fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusForCode(tt.code), tt.code)
	}
}

func TestAppError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Content is required", NewInvalidArgumentError("Content is required").Error())

	cause := errors.New("connection refused")
	err := NewExternalServiceError("generation server unreachable", cause)
	assert.Equal(t, "generation server unreachable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}
