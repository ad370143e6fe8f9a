package middleware

import (
	"errors"

	"github.com/YousefBawaliz/teacher-dashboard-backend/database"
	"github.com/YousefBawaliz/teacher-dashboard-backend/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	currentUserKey = "currentUser"
	classKey       = "ownedClass"
	courseKey      = "ownedCourse"
)

// Protected resolves the session to a user record and stores it in Locals.
// Requests without a valid session never reach the handler.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := SessionUserID(c)
		if !ok {
			return unauthenticated(c)
		}

		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			// Stale session pointing at a deleted user.
			return unauthenticated(c)
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Protected, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

func TeacherRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c)
		}
		if !user.IsTeacher() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Teacher access required",
			})
		}
		return c.Next()
	}
}

func StudentRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c)
		}
		if !user.IsStudent() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "Student access required",
			})
		}
		return c.Next()
	}
}

// ClassOwnerRequired loads the class from the :id route parameter, verifies
// the current user owns it and hands the loaded record to the handler via
// Locals, saving a second lookup.
func ClassOwnerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c)
		}

		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return resourceIDMissing(c)
		}

		var class models.Class
		if err := database.DB.First(&class, id).Error; err != nil {
			return resourceLoadError(c, err)
		}
		if class.TeacherID != user.ID {
			return ownershipDenied(c)
		}

		c.Locals(classKey, &class)
		return c.Next()
	}
}

// CourseOwnerRequired is the course counterpart of ClassOwnerRequired.
func CourseOwnerRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthenticated(c)
		}

		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return resourceIDMissing(c)
		}

		var course models.Course
		if err := database.DB.First(&course, id).Error; err != nil {
			return resourceLoadError(c, err)
		}
		if course.TeacherID != user.ID {
			return ownershipDenied(c)
		}

		c.Locals(courseKey, &course)
		return c.Next()
	}
}

// LocalClass returns the class loaded by ClassOwnerRequired.
func LocalClass(c *fiber.Ctx) *models.Class {
	class, _ := c.Locals(classKey).(*models.Class)
	return class
}

// LocalCourse returns the course loaded by CourseOwnerRequired.
func LocalCourse(c *fiber.Ctx) *models.Course {
	course, _ := c.Locals(courseKey).(*models.Course)
	return course
}

func resourceIDMissing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": "Resource ID not provided",
	})
}

func resourceLoadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Resource not found",
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Failed to load resource",
	})
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  "error",
		"message": "Authentication required",
	})
}

func ownershipDenied(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"status":  "error",
		"message": "Access denied to this resource",
	})
}
