package routes

import (
	"github.com/YousefBawaliz/teacher-dashboard-backend/handlers"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func ClassRoutes(app *fiber.App) {
	classes := app.Group("/api/classes", middleware.Protected())

	classes.Get("/", handlers.GetClasses)
	classes.Post("/", middleware.TeacherRequired(), handlers.CreateClass)

	// Bulk routes come before the parameterized student routes so "bulk"
	// is never captured as a student id.
	classes.Post("/:id/students/bulk", middleware.TeacherRequired(), middleware.ClassOwnerRequired(), handlers.BulkAddStudents)
	classes.Delete("/:id/students/bulk", middleware.TeacherRequired(), middleware.ClassOwnerRequired(), handlers.BulkRemoveStudents)

	classes.Get("/:id", handlers.GetClassByID)
	classes.Put("/:id", middleware.TeacherRequired(), middleware.ClassOwnerRequired(), handlers.UpdateClass)
	classes.Delete("/:id", middleware.TeacherRequired(), middleware.ClassOwnerRequired(), handlers.DeleteClass)

	classes.Get("/:id/students", handlers.GetClassStudents)
	classes.Get("/:id/courses", handlers.GetClassCourses)

	classes.Post("/:id/courses", middleware.TeacherRequired(), middleware.ClassOwnerRequired(), handlers.AddCourseToClass)
	classes.Delete("/:id/courses/:courseId", middleware.TeacherRequired(), middleware.ClassOwnerRequired(), handlers.RemoveCourseFromClass)
	classes.Post("/:id/students", middleware.TeacherRequired(), middleware.ClassOwnerRequired(), handlers.AddStudentToClass)
	classes.Delete("/:id/students/:studentId", middleware.TeacherRequired(), middleware.ClassOwnerRequired(), handlers.RemoveStudentFromClass)
}
