package handler

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/casamia/boardinghouse-api/internal/service"
)

type ContractHandler struct {
	contractService *service.ContractService
}

func NewContractHandler(contractService *service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Upload stores a contract document under a freshly allocated id
// POST /api/uploadContract (multipart: tenant_id, contract file)
func (h *ContractHandler) Upload(c *fiber.Ctx) error {
	tenantID, err := strconv.ParseInt(c.FormValue("tenant_id"), 10, 64)
	if err != nil || tenantID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "tenant_id is required",
		})
	}

	fileHeader, err := c.FormFile("contract")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "contract file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open contract file",
		})
	}
	defer file.Close()

	document, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read contract file",
		})
	}

	contract, err := h.contractService.Upload(c.Context(), tenantID, fileHeader.Filename, document)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"contract_id": contract.ID,
	})
}

// Download streams a contract document
// GET /api/contracts/:id
func (h *ContractHandler) Download(c *fiber.Ctx) error {
	contract, err := h.contractService.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+contract.FileName+`"`)
	return c.Status(fiber.StatusOK).Send(contract.Document)
}

// ListByTenant returns a tenant's contract metadata
// GET /api/contracts/tenant/:id
func (h *ContractHandler) ListByTenant(c *fiber.Ctx) error {
	tenantID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || tenantID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid tenant id",
		})
	}

	contracts, err := h.contractService.ListByTenant(c.Context(), tenantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(contracts)
}
