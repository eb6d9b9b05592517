package handlers

import (
	"fmt"
	"log/slog"

	"github.com/crotools/cro-admin-backend/internal/dto"
	"github.com/crotools/cro-admin-backend/internal/models"
	"github.com/crotools/cro-admin-backend/internal/services"
	"github.com/crotools/cro-admin-backend/internal/storage"
	"github.com/crotools/cro-admin-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// BulkHandler imports arrays of users or subcros. Shape validation is
// all-or-nothing: one malformed record rejects the whole batch before any
// write. Semantic failures (duplicate username, constraint violation) are
// per-row; earlier successful rows stay committed, there is no transaction
// around the loop.
type BulkHandler struct {
	auth  *services.AuthService
	store *storage.Storage
}

func NewBulkHandler(auth *services.AuthService, store *storage.Storage) *BulkHandler {
	return &BulkHandler{auth: auth, store: store}
}

func (h *BulkHandler) ImportUsers(c *fiber.Ctx) error {
	var records []dto.RegisterRequest
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Request must contain an array of users"})
	}
	if err := validation.Slice(records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	batchID := uuid.New()
	result := dto.BulkResult{Errors: []string{}}
	for _, rec := range records {
		if _, err := h.auth.Register(rec.Username, rec.Password, rec.Email, rec.Maincro); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to create user %s: %v", rec.Username, err))
			continue
		}
		result.Success++
	}

	slog.Info("bulk user import finished",
		"batch_id", batchID, "total", len(records),
		"success", result.Success, "failed", result.Failed)
	return c.Status(fiber.StatusCreated).JSON(result)
}

func (h *BulkHandler) ImportSubcros(c *fiber.Ctx) error {
	var records []dto.SubcroRequest
	if err := c.BodyParser(&records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Request must contain an array of subcros"})
	}
	if err := validation.Slice(records); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	batchID := uuid.New()
	result := dto.BulkResult{Errors: []string{}}
	for _, rec := range records {
		subcro := &models.Subcro{
			Maincro:     rec.Maincro,
			Subcro:      rec.Subcro,
			Label:       rec.Label,
			Flagcro:     rec.Flagcro,
			Webcallback: rec.Webcallback,
		}
		if err := h.store.CreateSubcro(subcro); err != nil {
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to create subcro %s: %v", rec.Subcro, err))
			continue
		}
		result.Success++
	}

	slog.Info("bulk subcro import finished",
		"batch_id", batchID, "total", len(records),
		"success", result.Success, "failed", result.Failed)
	return c.Status(fiber.StatusCreated).JSON(result)
}
