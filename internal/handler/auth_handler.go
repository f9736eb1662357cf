package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/casamia/boardinghouse-api/internal/config"
	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/handler/middleware"
	"github.com/casamia/boardinghouse-api/internal/service"
	"github.com/casamia/boardinghouse-api/pkg/validator"
)

const userDataCookieName = "userData"

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validator
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
		cfg:         cfg,
	}
}

func (h *AuthHandler) sessionCookie(name, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cfg.Session.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

func (h *AuthHandler) setSessionCookies(c *fiber.Ctx, sessionToken, userData string) {
	expires := time.Now().Add(h.cfg.Session.TTL)
	c.Cookie(h.sessionCookie(middleware.SessionCookieName, sessionToken, expires))
	if userData != "" {
		c.Cookie(h.sessionCookie(userDataCookieName, userData, expires))
	}
}

func (h *AuthHandler) clearSessionCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(h.sessionCookie(middleware.SessionCookieName, "", expired))
	c.Cookie(h.sessionCookie(userDataCookieName, "", expired))
}

// TenantLogin handles tenant login with the username in the path
// POST /api/login/:username
func (h *AuthHandler) TenantLogin(c *fiber.Ctx) error {
	username := c.Params("username")

	var req struct {
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return h.loginTenant(c, username, req.Password, false)
}

// TenantLoginQuery handles tenant login via query parameters
// GET /api/login?username=&password=
func (h *AuthHandler) TenantLoginQuery(c *fiber.Ctx) error {
	username := c.Query("username")
	password := c.Query("password")
	if username == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "username and password are required",
		})
	}

	return h.loginTenant(c, username, password, true)
}

func (h *AuthHandler) loginTenant(c *fiber.Ctx, username, password string, includeName bool) error {
	tenant, sessionToken, err := h.authService.TenantLogin(c.Context(), username, password)
	if err != nil {
		// A missing username and a wrong password look the same to the
		// client, so accounts cannot be enumerated.
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid credentials",
			})
		}
		return respondError(c, err)
	}

	h.setSessionCookies(c, sessionToken, "")

	body := fiber.Map{
		"success": true,
		"tenant": fiber.Map{
			"tenant_id": tenant.ID,
			"username":  tenant.Username,
		},
	}
	if includeName {
		body["tenant_name"] = tenant.FirstName + " " + tenant.LastName
	}

	return c.Status(fiber.StatusOK).JSON(body)
}

// TenantLogout deactivates a tenant session
// POST /api/tenants/logout
func (h *AuthHandler) TenantLogout(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err := h.authService.TenantLogout(c.Context(), req.Username)
	if err != nil {
		// Logging out an already-inactive tenant is a no-op, not a failure
		if errors.Is(err, domain.ErrNotActive) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"message": "tenant already logged out",
			})
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "logged out successfully",
	})
}

// CurrentUser resolves the session cookie to its identity
// GET /api/current-user
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	sessionToken := c.Cookies(middleware.SessionCookieName)
	if sessionToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing session token",
		})
	}

	identity, err := h.authService.ResolveSession(c.Context(), sessionToken)
	if err != nil {
		// Token present but no active identity holds it. Store failures are
		// not "session not found" and keep their 500.
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "session not found",
			})
		}
		return respondError(c, err)
	}

	switch identity.Kind {
	case domain.IdentityKindUser:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"user":    identity.User,
			"message": "user session active",
		})
	default:
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"user":    identity.Tenant,
			"message": "tenant session active",
		})
	}
}

// Logout revokes the cookie-borne session and clears the cookies
// POST /logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sessionToken := c.Cookies(middleware.SessionCookieName)
	if sessionToken == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing session token",
		})
	}

	err := h.authService.Logout(c.Context(), sessionToken)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return respondError(c, err)
	}

	// A token that no longer resolves is already logged out; either way the
	// cookies go away.
	h.clearSessionCookies(c)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "logged out successfully",
	})
}

// GoogleCallback finishes the OAuth flow and issues session cookies
// GET /oauthcallbackdwl?code=
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "code is required",
		})
	}

	result, err := h.authService.HandleGoogleCallback(c.Context(), code)
	if err != nil {
		return respondError(c, err)
	}

	h.setSessionCookies(c, result.SessionToken, result.UserData)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user":    result.User,
		"message": "login successful",
	})
}

// DeactivateUser clears the session addressed by external identity key
// POST /api/users/:googleId/deactivate
func (h *AuthHandler) DeactivateUser(c *fiber.Ctx) error {
	googleID := c.Params("googleId")
	if googleID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "googleId is required",
		})
	}

	err := h.authService.DeactivateByGoogleID(c.Context(), googleID)
	if err != nil {
		if errors.Is(err, domain.ErrNotActive) {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"message": "user already inactive",
			})
		}
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "user deactivated",
	})
}
