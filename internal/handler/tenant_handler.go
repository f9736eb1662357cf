package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/casamia/boardinghouse-api/internal/domain"
	"github.com/casamia/boardinghouse-api/internal/service"
	"github.com/casamia/boardinghouse-api/pkg/validator"
)

type TenantHandler struct {
	tenantService *service.TenantService
	validator     *validator.Validator
}

func NewTenantHandler(tenantService *service.TenantService, validator *validator.Validator) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		validator:     validator,
	}
}

func parseTenantID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid tenant id")
	}
	return id, nil
}

// Register creates a tenant record (no login credentials yet)
// POST /api/tenants
func (h *TenantHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterTenantRequest
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

	tenant, err := h.tenantService.Register(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// List returns all tenants
// GET /api/tenants
func (h *TenantHandler) List(c *fiber.Ctx) error {
	tenants, err := h.tenantService.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tenants)
}

// Get returns a single tenant
// GET /api/tenants/:id
func (h *TenantHandler) Get(c *fiber.Ctx) error {
	id, err := parseTenantID(c)
	if err != nil {
		return err
	}

	tenant, err := h.tenantService.GetByID(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tenant)
}

// Update applies a partial tenant update
// PATCH /api/tenants/:id
func (h *TenantHandler) Update(c *fiber.Ctx) error {
	id, err := parseTenantID(c)
	if err != nil {
		return err
	}

	var patch domain.TenantPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	tenant, changed, err := h.tenantService.UpdatePatch(c.Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tenant":  tenant,
		"changed": changed,
	})
}

// Delete removes a tenant
// DELETE /api/tenants/:id
func (h *TenantHandler) Delete(c *fiber.Ctx) error {
	id, err := parseTenantID(c)
	if err != nil {
		return err
	}

	if err := h.tenantService.Delete(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "tenant deleted",
	})
}

// CreateAccount sets the tenant's login credentials
// POST /api/tenants/:id/account
func (h *TenantHandler) CreateAccount(c *fiber.Ctx) error {
	id, err := parseTenantID(c)
	if err != nil {
		return err
	}

	var req struct {
		Username string `json:"username" validate:"required,min=3"`
		Password string `json:"password" validate:"required,min=8"`
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

	if err := h.tenantService.CreateAccount(c.Context(), id, req.Username, req.Password); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "tenant account created",
	})
}

type leaseDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

func (h *TenantHandler) parseLeaseDate(c *fiber.Ctx) (time.Time, error) {
	var req leaseDateRequest
	if err := c.BodyParser(&req); err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Validate(req); err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, fiber.NewError(fiber.StatusBadRequest, "invalid date")
	}
	return date, nil
}

// RenewLease restarts the lease from the given date with an open end
// POST /api/tenants/:id/lease/renew
func (h *TenantHandler) RenewLease(c *fiber.Ctx) error {
	id, err := parseTenantID(c)
	if err != nil {
		return err
	}
	date, err := h.parseLeaseDate(c)
	if err != nil {
		return err
	}

	if err := h.tenantService.RenewLeaseFrom(c.Context(), id, date); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "lease renewed",
	})
}

// ClearLeaseEnd removes the lease end date without resetting the start
// POST /api/tenants/:id/lease/clear-end
func (h *TenantHandler) ClearLeaseEnd(c *fiber.Ctx) error {
	id, err := parseTenantID(c)
	if err != nil {
		return err
	}

	if err := h.tenantService.ClearLeaseEnd(c.Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "lease end cleared",
	})
}

// TerminateLease sets the lease end date
// POST /api/tenants/:id/lease/terminate
func (h *TenantHandler) TerminateLease(c *fiber.Ctx) error {
	id, err := parseTenantID(c)
	if err != nil {
		return err
	}
	date, err := h.parseLeaseDate(c)
	if err != nil {
		return err
	}

	if err := h.tenantService.TerminateLease(c.Context(), id, date); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "lease terminated",
	})
}
