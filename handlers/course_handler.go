package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/YousefBawaliz/teacher-dashboard-backend/database"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/YousefBawaliz/teacher-dashboard-backend/models"
	"github.com/YousefBawaliz/teacher-dashboard-backend/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CourseCreateRequest struct {
	Title            string `json:"title" validate:"required,min=2,max=100"`
	Description      string `json:"description" validate:"required"`
	Date             string `json:"date" validate:"required"`
	TotalMarks       int    `json:"total_marks" validate:"required,min=1,max=1000"`
	DifficultyRating string `json:"difficulty_rating" validate:"required,oneof=easy medium hard advanced"`
}

type CourseUpdateRequest struct {
	Title            *string `json:"title" validate:"omitempty,min=2,max=100"`
	Description      *string `json:"description"`
	Date             *string `json:"date"`
	TotalMarks       *int    `json:"total_marks" validate:"omitempty,min=1,max=1000"`
	DifficultyRating *string `json:"difficulty_rating" validate:"omitempty,oneof=easy medium hard advanced"`
}

// CourseFilters are the list query parameters. dateFrom must not be in the
// future and dateTo must not be in the past; the two are deliberately not
// compared against each other.
type CourseFilters struct {
	Title      string `query:"title"`
	Difficulty string `query:"difficulty" validate:"omitempty,oneof=easy medium hard advanced"`
	DateFrom   string `query:"dateFrom"`
	DateTo     string `query:"dateTo"`
	Page       int    `query:"page"`
	PerPage    int    `query:"per_page"`
}

type classRef struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	SectionNumber string `json:"section_number"`
}

type courseDetail struct {
	models.CourseResponse
	AssignedClasses []classRef `json:"assigned_classes"`
}

// GetCourses lists courses scoped by role, filtered and paginated,
// ordered by date descending.
func GetCourses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var filters CourseFilters
	if err := c.QueryParser(&filters); err != nil {
		return badRequest(c, "Invalid query parameters")
	}
	if err := validate.Struct(filters); err != nil {
		return validationFailed(c, err)
	}

	query := database.DB.Model(&models.Course{})
	if user.IsTeacher() {
		query = query.Where("teacher_id = ?", user.ID)
	} else {
		classIDs, err := database.EnrolledClassIDs(database.DB, user.ID)
		if err != nil {
			return storageFailure(c, "Error loading courses", err)
		}
		courseIDs, err := database.CourseIDsForClasses(database.DB, classIDs)
		if err != nil {
			return storageFailure(c, "Error loading courses", err)
		}
		query = query.Where("id IN ?", courseIDs)
	}

	if filters.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filters.Title)+"%")
	}
	if filters.Difficulty != "" {
		query = query.Where("difficulty_rating = ?", filters.Difficulty)
	}
	if filters.DateFrom != "" {
		from, err := time.Parse(models.DateLayout, filters.DateFrom)
		if err != nil {
			return badRequest(c, "Invalid dateFrom format, expected YYYY-MM-DD")
		}
		if from.After(utils.Today()) {
			return badRequest(c, "dateFrom cannot be in the future")
		}
		query = query.Where("date >= ?", from)
	}
	if filters.DateTo != "" {
		to, err := time.Parse(models.DateLayout, filters.DateTo)
		if err != nil {
			return badRequest(c, "Invalid dateTo format, expected YYYY-MM-DD")
		}
		if to.Before(utils.Today()) {
			return badRequest(c, "dateTo cannot be in the past")
		}
		query = query.Where("date <= ?", to)
	}

	query = query.Order("date DESC")

	page, perPage := utils.ClampPageParams(filters.Page, filters.PerPage)
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

func GetCourseByID(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return badRequest(c, "Resource ID not provided")
	}

	var course models.Course
	if err := database.DB.First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, "Course not found")
		}
		return storageFailure(c, "Error loading course", err)
	}

	if user.IsTeacher() && course.TeacherID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "error",
			"message": "You can only view your own courses",
		})
	}
	if user.IsStudent() {
		reachable, err := courseReachableByStudent(course.ID, user.ID)
		if err != nil {
			return storageFailure(c, "Error loading course", err)
		}
		if !reachable {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "You are not enrolled in a class with this course",
			})
		}
	}

	classes, err := database.AssignedClasses(database.DB, course.ID)
	if err != nil {
		return storageFailure(c, "Error loading course", err)
	}
	refs := make([]classRef, 0, len(classes))
	for i := range classes {
		refs = append(refs, classRef{
			ID:            classes[i].ID,
			Name:          classes[i].Name,
			SectionNumber: classes[i].SectionNumber,
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": courseDetail{
			CourseResponse:  course.Response(),
			AssignedClasses: refs,
		},
	})
}

func CreateCourse(c *fiber.Ctx) error {
	var req CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if strings.TrimSpace(req.Title) == "" {
		return badRequest(c, "Course title cannot be empty")
	}
	if strings.TrimSpace(req.Description) == "" {
		return badRequest(c, "Course description cannot be empty")
	}

	date, err := time.Parse(models.DateLayout, req.Date)
	if err != nil {
		return badRequest(c, "Invalid date format, expected YYYY-MM-DD")
	}
	if date.Before(utils.Today()) {
		return badRequest(c, "Course date cannot be in the past")
	}

	course := models.Course{
		Title:            req.Title,
		Description:      req.Description,
		Date:             date,
		TotalMarks:       req.TotalMarks,
		DifficultyRating: req.DifficultyRating,
		TeacherID:        middleware.CurrentUser(c).ID,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return storageFailure(c, "Error creating course", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Course created successfully",
		"data":    course.Response(),
	})
}

func UpdateCourse(c *fiber.Ctx) error {
	course := middleware.LocalCourse(c)

	var req CourseUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return badRequest(c, "Course title cannot be empty")
		}
		course.Title = *req.Title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return badRequest(c, "Course description cannot be empty")
		}
		course.Description = *req.Description
	}
	if req.Date != nil {
		date, err := time.Parse(models.DateLayout, *req.Date)
		if err != nil {
			return badRequest(c, "Invalid date format, expected YYYY-MM-DD")
		}
		if date.Before(utils.Today()) {
			return badRequest(c, "Course date cannot be in the past")
		}
		course.Date = date
	}
	if req.TotalMarks != nil {
		course.TotalMarks = *req.TotalMarks
	}
	if req.DifficultyRating != nil {
		course.DifficultyRating = *req.DifficultyRating
	}

	if err := database.DB.Save(course).Error; err != nil {
		return storageFailure(c, "Error updating course", err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Course updated successfully",
		"data":    course.Response(),
	})
}

func DeleteCourse(c *fiber.Ctx) error {
	course := middleware.LocalCourse(c)
	title := course.Title

	if err := database.DeleteCourseCascade(database.DB, course); err != nil {
		return storageFailure(c, "Error deleting course", err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Course '%s' deleted successfully", title),
	})
}

// courseReachableByStudent reports whether the student's enrolled classes
// intersect the classes the course is assigned to.
func courseReachableByStudent(courseID, studentID uint) (bool, error) {
	enrolledIDs, err := database.EnrolledClassIDs(database.DB, studentID)
	if err != nil {
		return false, err
	}
	assignedIDs, err := database.AssignedClassIDs(database.DB, courseID)
	if err != nil {
		return false, err
	}

	enrolled := make(map[uint]struct{}, len(enrolledIDs))
	for _, id := range enrolledIDs {
		enrolled[id] = struct{}{}
	}
	for _, id := range assignedIDs {
		if _, ok := enrolled[id]; ok {
			return true, nil
		}
	}
	return false, nil
}
