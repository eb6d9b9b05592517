package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/crotools/cro-admin-backend/internal/dto"
	"github.com/crotools/cro-admin-backend/internal/models"
	"github.com/crotools/cro-admin-backend/internal/storage"
	"github.com/crotools/cro-admin-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type SubcroHandler struct {
	store *storage.Storage
}

func NewSubcroHandler(store *storage.Storage) *SubcroHandler {
	return &SubcroHandler{store: store}
}

func (h *SubcroHandler) List(c *fiber.Ctx) error {
	subcros, err := h.store.GetAllSubcros()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching subcros: %v", err),
		})
	}
	return c.JSON(subcros)
}

func (h *SubcroHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid ID format"})
	}

	subcro, err := h.store.GetSubcro(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Subcro not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching subcro: %v", err),
		})
	}
	return c.JSON(subcro)
}

func (h *SubcroHandler) Create(c *fiber.Ctx) error {
	var req dto.SubcroRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	subcro := &models.Subcro{
		Maincro:     req.Maincro,
		Subcro:      req.Subcro,
		Label:       req.Label,
		Flagcro:     req.Flagcro,
		Webcallback: req.Webcallback,
	}
	if err := h.store.CreateSubcro(subcro); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error creating subcro: %v", err),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(subcro)
}

func (h *SubcroHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid ID format"})
	}

	var req dto.SubcroRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	subcro, err := h.store.UpdateSubcro(id, storage.SubcroUpdate{
		Maincro:     req.Maincro,
		Subcro:      req.Subcro,
		Label:       req.Label,
		Flagcro:     req.Flagcro,
		Webcallback: req.Webcallback,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Subcro not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error updating subcro: %v", err),
		})
	}
	return c.JSON(subcro)
}

func (h *SubcroHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid ID format"})
	}

	deleted, err := h.store.DeleteSubcro(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error deleting subcro: %v", err),
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Subcro not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListByMaincro returns {id, subcro} options for one maincro, for the
// cascading selects in the console forms.
func (h *SubcroHandler) ListByMaincro(c *fiber.Ctx) error {
	maincro := c.Query("maincro")
	if maincro == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "MainCRO parameter is required"})
	}

	options, err := h.store.SubcrosByMaincro(maincro)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching subcros: %v", err),
		})
	}
	return c.JSON(options)
}

func (h *SubcroHandler) Maincros(c *fiber.Ctx) error {
	maincros, err := h.store.DistinctMaincros()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching maincros: %v", err),
		})
	}
	return c.JSON(maincros)
}
