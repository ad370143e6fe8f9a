package database

import (
	"github.com/YousefBawaliz/teacher-dashboard-backend/models"
	"gorm.io/gorm"
)

// Relationship lookups are plain functions over the association tables so
// every data fetch is a visible call rather than a lazily-loaded property.

// EnrolledClassIDs returns the ids of all classes the student is enrolled in.
func EnrolledClassIDs(db *gorm.DB, studentID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.ClassStudent{}).
		Where("student_id = ?", studentID).
		Pluck("class_id", &ids).Error
	return ids, err
}

// IsEnrolled reports whether the student has an enrollment row for the class.
func IsEnrolled(db *gorm.DB, classID, studentID uint) (bool, error) {
	var count int64
	err := db.Model(&models.ClassStudent{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error
	return count > 0, err
}

// ClassStudents returns the users enrolled in the class.
func ClassStudents(db *gorm.DB, classID uint) ([]models.User, error) {
	var studentIDs []uint
	err := db.Model(&models.ClassStudent{}).
		Where("class_id = ?", classID).
		Pluck("student_id", &studentIDs).Error
	if err != nil {
		return nil, err
	}

	students := make([]models.User, 0, len(studentIDs))
	if len(studentIDs) == 0 {
		return students, nil
	}
	err = db.Where("id IN ?", studentIDs).Find(&students).Error
	return students, err
}

// ClassCourses returns the courses assigned to the class.
func ClassCourses(db *gorm.DB, classID uint) ([]models.Course, error) {
	var courseIDs []uint
	err := db.Model(&models.ClassCourse{}).
		Where("class_id = ?", classID).
		Pluck("course_id", &courseIDs).Error
	if err != nil {
		return nil, err
	}

	courses := make([]models.Course, 0, len(courseIDs))
	if len(courseIDs) == 0 {
		return courses, nil
	}
	err = db.Where("id IN ?", courseIDs).Find(&courses).Error
	return courses, err
}

// CourseIDsForClasses returns the distinct course ids assigned to any of
// the given classes. Feeds the student-facing course queries.
func CourseIDsForClasses(db *gorm.DB, classIDs []uint) ([]uint, error) {
	ids := make([]uint, 0)
	if len(classIDs) == 0 {
		return ids, nil
	}
	err := db.Model(&models.ClassCourse{}).
		Where("class_id IN ?", classIDs).
		Distinct("course_id").
		Pluck("course_id", &ids).Error
	return ids, err
}

// AssignedClassIDs returns the ids of all classes the course is assigned to.
func AssignedClassIDs(db *gorm.DB, courseID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.ClassCourse{}).
		Where("course_id = ?", courseID).
		Pluck("class_id", &ids).Error
	return ids, err
}

// AssignedClasses returns the classes the course is assigned to.
func AssignedClasses(db *gorm.DB, courseID uint) ([]models.Class, error) {
	classIDs, err := AssignedClassIDs(db, courseID)
	if err != nil {
		return nil, err
	}

	classes := make([]models.Class, 0, len(classIDs))
	if len(classIDs) == 0 {
		return classes, nil
	}
	err = db.Where("id IN ?", classIDs).Find(&classes).Error
	return classes, err
}
