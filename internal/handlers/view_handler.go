package handlers

import (
	"fmt"

	"github.com/crotools/cro-admin-backend/internal/dto"
	"github.com/crotools/cro-admin-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// ViewHandler serves the two read-only joined views. Both are public.
type ViewHandler struct {
	store *storage.Storage
}

func NewViewHandler(store *storage.Storage) *ViewHandler {
	return &ViewHandler{store: store}
}

func (h *ViewHandler) HotelView(c *fiber.Ctx) error {
	rows, err := h.store.HotelMaincroSubcroView(c.Query("maincro"), c.Query("subcro"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching hotel view: %v", err),
		})
	}
	return c.JSON(rows)
}

func (h *ViewHandler) UserView(c *fiber.Ctx) error {
	rows, err := h.store.UserMaincroSubcroView(c.Query("maincro"), c.Query("subcro"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching user view: %v", err),
		})
	}
	return c.JSON(rows)
}
