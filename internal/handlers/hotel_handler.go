package handlers

import (
	"errors"
	"fmt"

	"github.com/crotools/cro-admin-backend/internal/dto"
	"github.com/crotools/cro-admin-backend/internal/models"
	"github.com/crotools/cro-admin-backend/internal/storage"
	"github.com/crotools/cro-admin-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type HotelHandler struct {
	store *storage.Storage
}

func NewHotelHandler(store *storage.Storage) *HotelHandler {
	return &HotelHandler{store: store}
}

func (h *HotelHandler) List(c *fiber.Ctx) error {
	hotels, err := h.store.GetAllHotels()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching hotels: %v", err),
		})
	}
	return c.JSON(hotels)
}

func (h *HotelHandler) Get(c *fiber.Ctx) error {
	hotel, err := h.store.GetHotel(c.Params("codeHotel"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Hotel not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching hotel: %v", err),
		})
	}
	return c.JSON(hotel)
}

func (h *HotelHandler) Create(c *fiber.Ctx) error {
	var req dto.HotelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	hotel := &models.Hotel{CodeHotel: req.CodeHotel, SubcroID: req.SubcroID}
	if err := h.store.CreateHotel(hotel); err != nil {
		// A dangling subcroId surfaces here as the raw FK violation.
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error creating hotel: %v", err),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(hotel)
}

func (h *HotelHandler) Update(c *fiber.Ctx) error {
	var req dto.HotelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	hotel, err := h.store.UpdateHotel(c.Params("codeHotel"), &models.Hotel{
		CodeHotel: req.CodeHotel,
		SubcroID:  req.SubcroID,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Hotel not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error updating hotel: %v", err),
		})
	}
	return c.JSON(hotel)
}

func (h *HotelHandler) Delete(c *fiber.Ctx) error {
	deleted, err := h.store.DeleteHotel(c.Params("codeHotel"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error deleting hotel: %v", err),
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Hotel not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AvailableCodes suggests unassigned codes for the create form. Always 200;
// the storage layer swallows failures into an empty list.
func (h *HotelHandler) AvailableCodes(c *fiber.Ctx) error {
	return c.JSON(h.store.AvailableHotelCodes())
}
