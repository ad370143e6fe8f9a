package handlers

import (
	"errors"
	"fmt"

	"github.com/YousefBawaliz/teacher-dashboard-backend/database"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/YousefBawaliz/teacher-dashboard-backend/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var validate = validator.New()

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Role     string `json:"role" validate:"required,oneof=teacher student"`
}

func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var user models.User
	if err := database.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email or password",
		})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid email or password",
		})
	}

	if err := middleware.LoginSession(c, user.ID, req.Remember); err != nil {
		return storageFailure(c, "Error creating session", err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Login successful",
		"user":    user.Summary(true),
		"success": true,
	})
}

func Logout(c *fiber.Ctx) error {
	if err := middleware.LogoutSession(c); err != nil {
		return storageFailure(c, "Error destroying session", err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Logout successful",
	})
}

// IsLoggedIn reports authentication state without ever failing: an absent
// or stale session is an ordinary {isAuthenticated: false} response.
func IsLoggedIn(c *fiber.Ctx) error {
	userID, ok := middleware.SessionUserID(c)
	if ok {
		var user models.User
		if err := database.DB.First(&user, userID).Error; err == nil {
			return c.JSON(fiber.Map{
				"status":          "success",
				"isAuthenticated": true,
				"user":            user.Summary(true),
			})
		}
	}

	return c.JSON(fiber.Map{
		"status":          "success",
		"isAuthenticated": false,
		"user":            nil,
	})
}

func Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var count int64
	if err := database.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return storageFailure(c, "Error creating user", err)
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "A user with this email already exists",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return storageFailure(c, "Error creating user", err)
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Role:     req.Role,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		// Concurrent registration can still trip the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": "A user with this email already exists",
			})
		}
		return storageFailure(c, "Error creating user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "User created successfully",
		"user":    user.Summary(true),
	})
}

func GetCurrentUser(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.JSON(fiber.Map{
		"status": "success",
		"user":   user.Summary(true),
	})
}

// SeedDatabase loads the development fixture set. Refuses to run against
// a database that already has users.
func SeedDatabase(c *fiber.Ctx) error {
	var count int64
	if err := database.DB.Model(&models.User{}).Count(&count).Error; err != nil {
		return storageFailure(c, "Error seeding database", err)
	}
	if count > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "Database already has users",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return storageFailure(c, "Error seeding database", err)
	}

	users := []models.User{
		{Email: "teacher@example.com", Name: "Jane Teacher", Role: models.RoleTeacher},
		{Email: "teacher2@example.com", Name: "Mike Johnson", Role: models.RoleTeacher},
		{Email: "student@example.com", Name: "John Student", Role: models.RoleStudent},
		{Email: "student1@example.com", Name: "Emily Parker", Role: models.RoleStudent},
		{Email: "student2@example.com", Name: "Michael Brown", Role: models.RoleStudent},
		{Email: "student3@example.com", Name: "Sophia Wilson", Role: models.RoleStudent},
		{Email: "student4@example.com", Name: "Daniel Lee", Role: models.RoleStudent},
		{Email: "student5@example.com", Name: "Olivia Martinez", Role: models.RoleStudent},
		{Email: "student6@example.com", Name: "James Taylor", Role: models.RoleStudent},
	}

	teachers, students := 0, 0
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range users {
			users[i].Password = string(hashed)
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
			if users[i].Role == models.RoleTeacher {
				teachers++
			} else {
				students++
			}
		}
		return nil
	})
	if err != nil {
		return storageFailure(c, "Error seeding database", err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Database seeded successfully",
		"data": fiber.Map{
			"teachers": teachers,
			"students": students,
		},
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"status":  "error",
		"message": "Validation failed",
		"errors":  err.Error(),
	})
}

// storageFailure surfaces the underlying error text in the 500 message,
// matching the envelope's message contract.
func storageFailure(c *fiber.Ctx, context string, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": fmt.Sprintf("%s: %v", context, err),
	})
}
