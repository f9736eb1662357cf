package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

// statusFromError maps the domain error taxonomy to HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNotActive),
		errors.Is(err, domain.ErrConflict),
		errors.Is(err, domain.ErrCounterExhausted):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusFromError(err)
	message := err.Error()
	if status == fiber.StatusInternalServerError {
		// Internal details stay in the logs
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
