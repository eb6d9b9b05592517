package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/crotools/cro-admin-backend/internal/dto"
	"github.com/crotools/cro-admin-backend/internal/storage"
	"github.com/crotools/cro-admin-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	store *storage.Storage
}

func NewUserHandler(store *storage.Storage) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) ListAll(c *fiber.Ctx) error {
	users, err := h.store.GetAllUsers()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error fetching all users: %v", err),
		})
	}
	return c.JSON(users)
}

// Update changes username/email/maincro. Passwords never move through this
// endpoint; a password field in the body is simply not parsed.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid ID format"})
	}

	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	user, err := h.store.UpdateUser(id, storage.UserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Maincro:  req.Maincro,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "User not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error updating user: %v", err),
		})
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid ID format"})
	}

	deleted, err := h.store.DeleteUser(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error deleting user: %v", err),
		})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "User not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
