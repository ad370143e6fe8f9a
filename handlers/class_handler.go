package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/YousefBawaliz/teacher-dashboard-backend/database"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/YousefBawaliz/teacher-dashboard-backend/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ClassCreateRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	SectionNumber string `json:"section_number" validate:"required,min=1,max=20"`
}

type ClassUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=100"`
	SectionNumber *string `json:"section_number" validate:"omitempty,min=1,max=20"`
}

type ClassCourseRequest struct {
	CourseID uint `json:"course_id" validate:"required"`
}

type ClassStudentRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
}

type BulkStudentRequest struct {
	StudentIDs []uint `json:"student_ids"`
}

type classDetail struct {
	models.Class
	Students []models.UserSummary    `json:"students"`
	Courses  []models.CourseResponse `json:"courses"`
}

// GetClasses lists classes scoped by role: teachers see the classes they
// own, students the classes they are enrolled in. Unpaginated.
func GetClasses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	classes := make([]models.Class, 0)
	if user.IsTeacher() {
		if err := database.DB.Where("teacher_id = ?", user.ID).Find(&classes).Error; err != nil {
			return storageFailure(c, "Error loading classes", err)
		}
	} else {
		classIDs, err := database.EnrolledClassIDs(database.DB, user.ID)
		if err != nil {
			return storageFailure(c, "Error loading classes", err)
		}
		if len(classIDs) > 0 {
			if err := database.DB.Where("id IN ?", classIDs).Find(&classes).Error; err != nil {
				return storageFailure(c, "Error loading classes", err)
			}
		}
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   classes,
	})
}

func GetClassByID(c *fiber.Ctx) error {
	class, err := classForViewer(c)
	if err != nil {
		return err
	}

	students, err := database.ClassStudents(database.DB, class.ID)
	if err != nil {
		return storageFailure(c, "Error loading class", err)
	}
	courses, err := database.ClassCourses(database.DB, class.ID)
	if err != nil {
		return storageFailure(c, "Error loading class", err)
	}

	summaries := make([]models.UserSummary, 0, len(students))
	for i := range students {
		summaries = append(summaries, students[i].Summary(false))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": classDetail{
			Class:    *class,
			Students: summaries,
			Courses:  models.CourseResponses(courses),
		},
	})
}

func GetClassStudents(c *fiber.Ctx) error {
	class, err := classForViewer(c)
	if err != nil {
		return err
	}

	students, err := database.ClassStudents(database.DB, class.ID)
	if err != nil {
		return storageFailure(c, "Error loading students", err)
	}

	summaries := make([]models.UserSummary, 0, len(students))
	for i := range students {
		summaries = append(summaries, students[i].Summary(false))
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   summaries,
	})
}

func GetClassCourses(c *fiber.Ctx) error {
	class, err := classForViewer(c)
	if err != nil {
		return err
	}

	courses, err := database.ClassCourses(database.DB, class.ID)
	if err != nil {
		return storageFailure(c, "Error loading courses", err)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   models.CourseResponses(courses),
	})
}

func CreateClass(c *fiber.Ctx) error {
	var req ClassCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return badRequest(c, "Class name cannot be empty")
	}
	if strings.TrimSpace(req.SectionNumber) == "" {
		return badRequest(c, "Section number cannot be empty")
	}

	class := models.Class{
		Name:          req.Name,
		SectionNumber: req.SectionNumber,
		TeacherID:     middleware.CurrentUser(c).ID,
	}
	if err := database.DB.Create(&class).Error; err != nil {
		return storageFailure(c, "Error creating class", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"message": "Class created successfully",
		"data":    class,
	})
}

func UpdateClass(c *fiber.Ctx) error {
	class := middleware.LocalClass(c)

	var req ClassUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return badRequest(c, "Class name cannot be empty")
		}
		class.Name = *req.Name
	}
	if req.SectionNumber != nil {
		if strings.TrimSpace(*req.SectionNumber) == "" {
			return badRequest(c, "Section number cannot be empty")
		}
		class.SectionNumber = *req.SectionNumber
	}

	if err := database.DB.Save(class).Error; err != nil {
		return storageFailure(c, "Error updating class", err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Class updated successfully",
		"data":    class,
	})
}

func DeleteClass(c *fiber.Ctx) error {
	class := middleware.LocalClass(c)
	name := class.Name

	if err := database.DeleteClassCascade(database.DB, class); err != nil {
		return storageFailure(c, "Error deleting class", err)
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Class '%s' deleted successfully", name),
	})
}

func AddCourseToClass(c *fiber.Ctx) error {
	class := middleware.LocalClass(c)

	var req ClassCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var course models.Course
	if err := database.DB.First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, fmt.Sprintf("Course with ID %d not found", req.CourseID))
		}
		return storageFailure(c, "Error adding course to class", err)
	}

	var added bool
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		added, txErr = database.AddCourseToClass(tx, class.ID, course.ID)
		return txErr
	})
	if err != nil {
		return storageFailure(c, "Error adding course to class", err)
	}
	if !added {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "Course is already assigned to this class",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Course '%s' added to class successfully", course.Title),
	})
}

func RemoveCourseFromClass(c *fiber.Ctx) error {
	class := middleware.LocalClass(c)

	courseID, err := c.ParamsInt("courseId")
	if err != nil || courseID < 1 {
		return badRequest(c, "Resource ID not provided")
	}

	var course models.Course
	if err := database.DB.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, fmt.Sprintf("Course with ID %d not found", courseID))
		}
		return storageFailure(c, "Error removing course from class", err)
	}

	var removed bool
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		removed, txErr = database.RemoveCourseFromClass(tx, class.ID, course.ID)
		return txErr
	})
	if err != nil {
		return storageFailure(c, "Error removing course from class", err)
	}
	if !removed {
		return notFound(c, "Course is not assigned to this class")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Course '%s' removed from class successfully", course.Title),
	})
}

func AddStudentToClass(c *fiber.Ctx) error {
	class := middleware.LocalClass(c)

	var req ClassStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cannot parse JSON")
	}
	if err := validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	var student models.User
	if err := database.DB.First(&student, req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, fmt.Sprintf("User with ID %d not found", req.StudentID))
		}
		return storageFailure(c, "Error adding student to class", err)
	}
	if !student.IsStudent() {
		return badRequest(c, "Only students can be enrolled in classes")
	}

	var added bool
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		added, txErr = database.AddStudentToClass(tx, class.ID, student.ID)
		return txErr
	})
	if err != nil {
		return storageFailure(c, "Error adding student to class", err)
	}
	if !added {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status":  "error",
			"message": "Student is already enrolled in this class",
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Student '%s' enrolled in class successfully", student.Name),
	})
}

func RemoveStudentFromClass(c *fiber.Ctx) error {
	class := middleware.LocalClass(c)

	studentID, err := c.ParamsInt("studentId")
	if err != nil || studentID < 1 {
		return badRequest(c, "Resource ID not provided")
	}

	var student models.User
	if err := database.DB.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c, fmt.Sprintf("User with ID %d not found", studentID))
		}
		return storageFailure(c, "Error removing student from class", err)
	}

	var removed bool
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		removed, txErr = database.RemoveStudentFromClass(tx, class.ID, student.ID)
		return txErr
	})
	if err != nil {
		return storageFailure(c, "Error removing student from class", err)
	}
	if !removed {
		return notFound(c, "Student is not enrolled in this class")
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Student '%s' removed from class successfully", student.Name),
	})
}

type bulkEntry struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type bulkAddDetails struct {
	Success         []bulkEntry `json:"success"`
	AlreadyEnrolled []bulkEntry `json:"already_enrolled"`
	NotFound        []uint      `json:"not_found"`
	NotStudents     []uint      `json:"not_students"`
}

type bulkRemoveDetails struct {
	Success     []bulkEntry `json:"success"`
	NotEnrolled []bulkEntry `json:"not_enrolled"`
	NotFound    []uint      `json:"not_found"`
}

// BulkAddStudents enrolls a batch of students. Every id lands in exactly
// one bucket and all valid enrollments commit in a single transaction.
func BulkAddStudents(c *fiber.Ctx) error {
	class := middleware.LocalClass(c)

	var req BulkStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "student_ids must be a list of integers")
	}
	if len(req.StudentIDs) == 0 {
		return badRequest(c, "No student IDs provided")
	}

	details := bulkAddDetails{
		Success:         make([]bulkEntry, 0),
		AlreadyEnrolled: make([]bulkEntry, 0),
		NotFound:        make([]uint, 0),
		NotStudents:     make([]uint, 0),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range req.StudentIDs {
			var student models.User
			if err := tx.First(&student, studentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					details.NotFound = append(details.NotFound, studentID)
					continue
				}
				return err
			}
			if !student.IsStudent() {
				details.NotStudents = append(details.NotStudents, studentID)
				continue
			}

			added, err := database.AddStudentToClass(tx, class.ID, student.ID)
			if err != nil {
				return err
			}
			entry := bulkEntry{ID: student.ID, Name: student.Name}
			if added {
				details.Success = append(details.Success, entry)
			} else {
				details.AlreadyEnrolled = append(details.AlreadyEnrolled, entry)
			}
		}
		return nil
	})
	if err != nil {
		return storageFailure(c, "Error adding students to class", err)
	}

	segments := make([]string, 0, 4)
	if len(details.Success) > 0 {
		segments = append(segments, fmt.Sprintf("Successfully added %d students", len(details.Success)))
	}
	if len(details.AlreadyEnrolled) > 0 {
		segments = append(segments, fmt.Sprintf("%d students were already enrolled", len(details.AlreadyEnrolled)))
	}
	if len(details.NotFound) > 0 {
		segments = append(segments, fmt.Sprintf("%d student IDs not found", len(details.NotFound)))
	}
	if len(details.NotStudents) > 0 {
		segments = append(segments, fmt.Sprintf("%d users were not students", len(details.NotStudents)))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": strings.Join(segments, ". "),
		"details": details,
	})
}

// BulkRemoveStudents is the removal counterpart of BulkAddStudents.
func BulkRemoveStudents(c *fiber.Ctx) error {
	class := middleware.LocalClass(c)

	var req BulkStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "student_ids must be a list of integers")
	}
	if len(req.StudentIDs) == 0 {
		return badRequest(c, "No student IDs provided")
	}

	details := bulkRemoveDetails{
		Success:     make([]bulkEntry, 0),
		NotEnrolled: make([]bulkEntry, 0),
		NotFound:    make([]uint, 0),
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, studentID := range req.StudentIDs {
			var student models.User
			if err := tx.First(&student, studentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					details.NotFound = append(details.NotFound, studentID)
					continue
				}
				return err
			}

			removed, err := database.RemoveStudentFromClass(tx, class.ID, student.ID)
			if err != nil {
				return err
			}
			entry := bulkEntry{ID: student.ID, Name: student.Name}
			if removed {
				details.Success = append(details.Success, entry)
			} else {
				details.NotEnrolled = append(details.NotEnrolled, entry)
			}
		}
		return nil
	})
	if err != nil {
		return storageFailure(c, "Error removing students from class", err)
	}

	segments := make([]string, 0, 3)
	if len(details.Success) > 0 {
		segments = append(segments, fmt.Sprintf("Successfully removed %d students", len(details.Success)))
	}
	if len(details.NotEnrolled) > 0 {
		segments = append(segments, fmt.Sprintf("%d students were not enrolled", len(details.NotEnrolled)))
	}
	if len(details.NotFound) > 0 {
		segments = append(segments, fmt.Sprintf("%d student IDs not found", len(details.NotFound)))
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": strings.Join(segments, ". "),
		"details": details,
	})
}

// classForViewer loads the class named by the :id parameter and applies
// the role-scoped read rule: the owning teacher, or an enrolled student.
// Failures come back as fiber errors for the central handler to format.
func classForViewer(c *fiber.Ctx) (*models.Class, error) {
	user := middleware.CurrentUser(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Resource ID not provided")
	}

	var class models.Class
	if err := database.DB.First(&class, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Error loading class: %v", err))
	}

	if user.IsTeacher() && class.TeacherID != user.ID {
		return nil, fiber.NewError(fiber.StatusForbidden, "You can only view your own classes")
	}
	if user.IsStudent() {
		enrolled, err := database.IsEnrolled(database.DB, class.ID, user.ID)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Error loading class: %v", err))
		}
		if !enrolled {
			return nil, fiber.NewError(fiber.StatusForbidden, "You are not enrolled in this class")
		}
	}

	return &class, nil
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}
