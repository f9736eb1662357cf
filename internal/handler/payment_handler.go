package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/casamia/boardinghouse-api/internal/service"
	"github.com/casamia/boardinghouse-api/pkg/validator"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *validator.Validator
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *validator.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

// Record allocates a payment id and persists the payment. The form arrives
// as multipart from the admin console; BodyParser handles both that and JSON.
// POST /api/payments
func (h *PaymentHandler) Record(c *fiber.Ctx) error {
	var req service.RecordPaymentRequest
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

	payment, err := h.paymentService.RecordPayment(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// Get returns a single payment by its human-readable id
// GET /api/payments/:id
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	payment, err := h.paymentService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(payment)
}

// List returns all payments
// GET /api/payments
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	payments, err := h.paymentService.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(payments)
}

// ListByTenant returns a tenant's payments
// GET /api/payments/tenant/:id
func (h *PaymentHandler) ListByTenant(c *fiber.Ctx) error {
	tenantID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || tenantID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid tenant id",
		})
	}

	payments, err := h.paymentService.ListByTenant(c.Context(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(payments)
}
