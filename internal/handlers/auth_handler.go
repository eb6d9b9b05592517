package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/crotools/cro-admin-backend/internal/dto"
	"github.com/crotools/cro-admin-backend/internal/middleware"
	"github.com/crotools/cro-admin-backend/internal/services"
	"github.com/crotools/cro-admin-backend/internal/session"
	"github.com/crotools/cro-admin-backend/internal/storage"
	"github.com/crotools/cro-admin-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

type AuthHandler struct {
	auth     *services.AuthService
	store    *storage.Storage
	sessions *fibersession.Store
}

func NewAuthHandler(auth *services.AuthService, store *storage.Storage, sessions *fibersession.Store) *AuthHandler {
	return &AuthHandler{auth: auth, store: store, sessions: sessions}
}

// Register creates a user and logs it straight in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	user, err := h.auth.Register(req.Username, req.Password, req.Email, req.Maincro)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		slog.Error("registration failed", "error", err, "username", req.Username)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error registering user: %v", err),
		})
	}

	if err := session.SetLoginUser(c, h.sessions, user.ID); err != nil {
		slog.Error("failed to establish session", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error establishing session: %v", err),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: err.Error()})
		}
		slog.Error("login failed", "error", err, "username", req.Username)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error logging in: %v", err),
		})
	}

	if err := session.SetLoginUser(c, h.sessions, user.ID); err != nil {
		slog.Error("failed to establish session", "error", err, "user_id", user.ID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error establishing session: %v", err),
		})
	}
	return c.JSON(user)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := session.Clear(c, h.sessions); err != nil {
		slog.Error("logout failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error logging out: %v", err),
		})
	}
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the user bound to the current session.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.store.GetUser(middleware.AuthUserID(c))
	if err != nil {
		// Session points at a deleted user; treat as unauthenticated.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Unauthorized"})
	}
	return c.JSON(user)
}
