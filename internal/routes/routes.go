package routes

import (
	"github.com/crotools/cro-admin-backend/internal/handlers"
	"github.com/crotools/cro-admin-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
)

// Setup wires the whole /api surface. Reads on hotels, subcros, the two
// views and the code/maincro helpers are public; everything that mutates,
// everything about users, and the query console require a session.
func Setup(
	app *fiber.App,
	sessions *fibersession.Store,
	authHandler *handlers.AuthHandler,
	hotelHandler *handlers.HotelHandler,
	subcroHandler *handlers.SubcroHandler,
	userHandler *handlers.UserHandler,
	viewHandler *handlers.ViewHandler,
	queryHandler *handlers.QueryHandler,
	bulkHandler *handlers.BulkHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")
	protected := middleware.SessionRequired(sessions)

	api.Get("/health", healthHandler.Check)

	// Auth
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", protected, authHandler.Logout)
	api.Get("/user", protected, authHandler.Me)

	// Users (all session-gated, including reads)
	api.Get("/user/all", protected, userHandler.ListAll)
	api.Put("/user/:id", protected, userHandler.Update)
	api.Delete("/user/:id", protected, userHandler.Delete)
	api.Post("/user/bulk", protected, bulkHandler.ImportUsers)

	// Hotels — static paths before the :codeHotel wildcard
	api.Get("/hotel/codes", hotelHandler.AvailableCodes)
	api.Get("/hotel", hotelHandler.List)
	api.Get("/hotel/:codeHotel", hotelHandler.Get)
	api.Post("/hotel", protected, hotelHandler.Create)
	api.Put("/hotel/:codeHotel", protected, hotelHandler.Update)
	api.Delete("/hotel/:codeHotel", protected, hotelHandler.Delete)

	// Subcros — /list and /bulk before the :id wildcard
	api.Get("/subcro/list", subcroHandler.ListByMaincro)
	api.Post("/subcro/bulk", protected, bulkHandler.ImportSubcros)
	api.Get("/subcro", subcroHandler.List)
	api.Get("/subcro/:id", subcroHandler.Get)
	api.Post("/subcro", protected, subcroHandler.Create)
	api.Put("/subcro/:id", protected, subcroHandler.Update)
	api.Delete("/subcro/:id", protected, subcroHandler.Delete)

	// Joined views and form helpers
	api.Get("/hotel-view", viewHandler.HotelView)
	api.Get("/user-view", viewHandler.UserView)
	api.Get("/maincro", subcroHandler.Maincros)

	// Query console
	api.Post("/query", protected, queryHandler.Execute)
}
