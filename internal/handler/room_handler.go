package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/casamia/boardinghouse-api/internal/service"
	"github.com/casamia/boardinghouse-api/pkg/validator"
)

type RoomHandler struct {
	roomService *service.RoomService
	validator   *validator.Validator
}

func NewRoomHandler(roomService *service.RoomService, validator *validator.Validator) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		validator:   validator,
	}
}

// Create adds a room
// POST /api/rooms
func (h *RoomHandler) Create(c *fiber.Ctx) error {
	var req service.RoomRequest
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

	room, err := h.roomService.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(room)
}

// List returns all rooms
// GET /api/rooms
func (h *RoomHandler) List(c *fiber.Ctx) error {
	rooms, err := h.roomService.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(rooms)
}

// Get returns a single room
// GET /api/rooms/:roomNumber
func (h *RoomHandler) Get(c *fiber.Ctx) error {
	room, err := h.roomService.GetByNumber(c.Context(), c.Params("roomNumber"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(room)
}

// Update rewrites a room's bed counts and image
// PUT /api/rooms/:roomNumber
func (h *RoomHandler) Update(c *fiber.Ctx) error {
	var req service.RoomRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	req.RoomNumber = c.Params("roomNumber")
	if err := h.validator.Validate(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	room, err := h.roomService.Update(c.Context(), c.Params("roomNumber"), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(room)
}

// Delete removes a room
// DELETE /api/rooms/:roomNumber
func (h *RoomHandler) Delete(c *fiber.Ctx) error {
	if err := h.roomService.Delete(c.Context(), c.Params("roomNumber")); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "room deleted",
	})
}
