package middleware

import (
	"github.com/crotools/cro-admin-backend/internal/dto"
	"github.com/crotools/cro-admin-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

const userIDLocal = "auth_user_id"

// SessionRequired rejects requests that carry no authenticated session.
// On success the user id is stashed in locals for the handler.
func SessionRequired(store *fibersession.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := session.GetLoginUserID(c, store)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Message: "Unauthorized",
			})
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// AuthUserID returns the user id stashed by SessionRequired.
func AuthUserID(c *fiber.Ctx) int {
	id, _ := c.Locals(userIDLocal).(int)
	return id
}
