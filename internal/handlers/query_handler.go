package handlers

import (
	"fmt"
	"log/slog"

	"github.com/crotools/cro-admin-backend/internal/dto"
	"github.com/crotools/cro-admin-backend/internal/middleware"
	"github.com/crotools/cro-admin-backend/internal/storage"
	"github.com/crotools/cro-admin-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// QueryHandler is the raw SQL console. It can do anything the database
// user can do; the session check on the route is the only gate, and every
// execution is recorded in query_audits.
type QueryHandler struct {
	store *storage.Storage
}

func NewQueryHandler(store *storage.Storage) *QueryHandler {
	return &QueryHandler{store: store}
}

func (h *QueryHandler) Execute(c *fiber.Ctx) error {
	var req dto.QueryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: err.Error()})
	}

	userID := middleware.AuthUserID(c)
	result, err := h.store.ExecuteQuery(req.SQL)
	h.store.RecordQueryAudit(userID, req.SQL, result, err)
	if err != nil {
		slog.Error("query console execution failed", "error", err, "user_id", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Message: fmt.Sprintf("Error executing query: %v", err),
		})
	}
	return c.JSON(result)
}
