package handlers

import (
	"github.com/YousefBawaliz/teacher-dashboard-backend/database"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/YousefBawaliz/teacher-dashboard-backend/models"
	"github.com/YousefBawaliz/teacher-dashboard-backend/utils"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProfileUpdateRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	CurrentPassword *string `json:"current_password"`
	NewPassword     *string `json:"new_password" validate:"omitempty,min=8"`
}

type pageParams struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// GetStudentCourses lists the distinct courses reachable through the
// student's enrolled classes, newest date first, paginated.
func GetStudentCourses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	classIDs, err := database.EnrolledClassIDs(database.DB, user.ID)
	if err != nil {
		return storageFailure(c, "Error loading courses", err)
	}
	courseIDs, err := database.CourseIDsForClasses(database.DB, classIDs)
	if err != nil {
		return storageFailure(c, "Error loading courses", err)
	}

	query := database.DB.Model(&models.Course{}).
		Where("id IN ?", courseIDs).
		Order("date DESC")

	var params pageParams
	if err := c.QueryParser(&params); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	page, perPage := utils.ClampPageParams(params.Page, params.PerPage)

	var courses []models.Course
	pagination, err := utils.Paginate(query, page, perPage, &courses)
	if err != nil {
		return storageFailure(c, "Error loading courses", err)
	}
	pagination.SetPageURLs(c.BaseURL() + c.Path())

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"items":      models.CourseResponses(courses),
			"pagination": pagination,
		},
	})
}

// GetStudentClasses lists the student's enrolled classes ordered by name,
// paginated.
func GetStudentClasses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	classIDs, err := database.EnrolledClassIDs(database.DB, user.ID)
	if err != nil {
		return storageFailure(c, "Error loading classes", err)
	}

	query := database.DB.Model(&models.Class{}).
		Where("id IN ?", classIDs).
		Order("name")

	var params pageParams
	if err := c.QueryParser(&params); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	page, perPage := utils.ClampPageParams(params.Page, params.PerPage)

	var classes []models.Class
	pagination, err := utils.Paginate(query, page, perPage, &classes)
	if err != nil {
		return storageFailure(c, "Error loading classes", err)
	}
	pagination.SetPageURLs(c.BaseURL() + c.Path())

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"items":      classes,
			"pagination": pagination,
		},
	})
}

// GetStudentProfile returns the full profile with denormalized enrollment
// lists, unpaginated.
func GetStudentProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	classIDs, err := database.EnrolledClassIDs(database.DB, user.ID)
	if err != nil {
		return storageFailure(c, "Error loading profile", err)
	}
	courseIDs, err := database.CourseIDsForClasses(database.DB, classIDs)
	if err != nil {
		return storageFailure(c, "Error loading profile", err)
	}

	classes := make([]models.Class, 0, len(classIDs))
	if len(classIDs) > 0 {
		if err := database.DB.Where("id IN ?", classIDs).Find(&classes).Error; err != nil {
			return storageFailure(c, "Error loading profile", err)
		}
	}
	courses := make([]models.Course, 0, len(courseIDs))
	if len(courseIDs) > 0 {
		if err := database.DB.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
			return storageFailure(c, "Error loading profile", err)
		}
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"profile":          user,
			"enrolled_courses": models.CourseResponses(courses),
			"enrolled_classes": classes,
		},
	})
}

// UpdateStudentProfile applies a partial update to name, email and
// password. A password change requires the current password and verifies
// it before anything is written.
func UpdateStudentProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if req.NewPassword != nil && req.CurrentPassword == nil {
		return badRequest(c, "Current password is required to set a new password")
	}

	if req.NewPassword != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.CurrentPassword)); err != nil {
			return badRequest(c, "Current password is incorrect")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return storageFailure(c, "Error updating profile", err)
		}
		user.Password = string(hashed)
	}

	if req.Email != nil {
		var count int64
		err := database.DB.Model(&models.User{}).
			Where("email = ? AND id <> ?", *req.Email, user.ID).
			Count(&count).Error
		if err != nil {
			return storageFailure(c, "Error updating profile", err)
		}
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"status":  "error",
				"message": "Email is already in use",
			})
		}
		user.Email = *req.Email
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(user).Error
	})
	if err != nil {
		return storageFailure(c, "Error updating profile", err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    user,
	})
}
