package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/casamia/boardinghouse-api/internal/domain"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "sessionToken"

// IdentityKey is the fiber.Locals key the resolved identity is stored under.
const IdentityKey = "identity"

// SessionResolver is implemented by the auth service.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionToken string) (*domain.Identity, error)
}

// RequireSession validates the session cookie and attaches the resolved
// identity for downstream handlers. Fails closed on anything unresolvable.
func RequireSession(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionToken := c.Cookies(SessionCookieName)
		if sessionToken == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing session token",
			})
		}

		identity, err := resolver.ResolveSession(c.Context(), sessionToken)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session",
			})
		}

		c.Locals(IdentityKey, identity)

		return c.Next()
	}
}

// IdentityFromCtx returns the identity attached by RequireSession, or nil.
func IdentityFromCtx(c *fiber.Ctx) *domain.Identity {
	identity, _ := c.Locals(IdentityKey).(*domain.Identity)
	return identity
}
