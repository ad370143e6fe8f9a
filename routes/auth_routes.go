package routes

import (
	"github.com/YousefBawaliz/teacher-dashboard-backend/handlers"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/login", handlers.Login)
	api.Post("/logout", middleware.Protected(), handlers.Logout)
	api.Get("/isLoggedIn", handlers.IsLoggedIn)
	api.Post("/register", handlers.Register)
	api.Get("/user", middleware.Protected(), handlers.GetCurrentUser)
	api.Post("/seed", handlers.SeedDatabase)
}
