package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrValidation, fiber.StatusBadRequest},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{domain.ErrNotFound, fiber.StatusNotFound},
		{domain.ErrNotActive, fiber.StatusConflict},
		{domain.ErrConflict, fiber.StatusConflict},
		{domain.ErrCounterExhausted, fiber.StatusConflict},
		{errors.New("database on fire"), fiber.StatusInternalServerError},
		// wrapped errors keep their mapping
		{fmt.Errorf("payment not found: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{fmt.Errorf("allocation contended 5 times: %w", domain.ErrConflict), fiber.StatusConflict},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, statusFromError(tc.err), "error %v", tc.err)
	}
}
