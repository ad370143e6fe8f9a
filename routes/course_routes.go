package routes

import (
	"github.com/YousefBawaliz/teacher-dashboard-backend/handlers"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	courses := app.Group("/api/courses", middleware.Protected())

	courses.Get("/", handlers.GetCourses)
	courses.Post("/", middleware.TeacherRequired(), handlers.CreateCourse)

	courses.Get("/:id", handlers.GetCourseByID)
	courses.Put("/:id", middleware.TeacherRequired(), middleware.CourseOwnerRequired(), handlers.UpdateCourse)
	courses.Delete("/:id", middleware.TeacherRequired(), middleware.CourseOwnerRequired(), handlers.DeleteCourse)
}
