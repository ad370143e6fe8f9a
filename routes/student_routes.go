package routes

import (
	"github.com/YousefBawaliz/teacher-dashboard-backend/handlers"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	students := app.Group("/api/students", middleware.Protected(), middleware.StudentRequired())

	students.Get("/courses", handlers.GetStudentCourses)
	students.Get("/classes", handlers.GetStudentClasses)
	students.Get("/profile", handlers.GetStudentProfile)
	students.Put("/profile", handlers.UpdateStudentProfile)
}
