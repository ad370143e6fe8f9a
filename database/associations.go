package database

import (
	"github.com/YousefBawaliz/teacher-dashboard-backend/models"
	"gorm.io/gorm"
)

// Association management is idempotent: adding an existing pair and
// removing an absent one report false instead of failing, so callers
// branch on the boolean and reserve errors for real store failures.

// AddCourseToClass links the course to the class. Returns false when the
// pair already exists.
func AddCourseToClass(tx *gorm.DB, classID, courseID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.ClassCourse{}).
		Where("class_id = ? AND course_id = ?", classID, courseID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err = tx.Create(&models.ClassCourse{ClassID: classID, CourseID: courseID}).Error
	return err == nil, err
}

// RemoveCourseFromClass unlinks the course. Returns false when the pair
// was not present.
func RemoveCourseFromClass(tx *gorm.DB, classID, courseID uint) (bool, error) {
	res := tx.Where("class_id = ? AND course_id = ?", classID, courseID).
		Delete(&models.ClassCourse{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AddStudentToClass enrolls the student. Returns false when already enrolled.
func AddStudentToClass(tx *gorm.DB, classID, studentID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.ClassStudent{}).
		Where("class_id = ? AND student_id = ?", classID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err = tx.Create(&models.ClassStudent{ClassID: classID, StudentID: studentID}).Error
	return err == nil, err
}

// RemoveStudentFromClass unenrolls the student. Returns false when the
// student was not enrolled.
func RemoveStudentFromClass(tx *gorm.DB, classID, studentID uint) (bool, error) {
	res := tx.Where("class_id = ? AND student_id = ?", classID, studentID).
		Delete(&models.ClassStudent{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteClassCascade removes the class and all of its association rows in
// one transaction.
func DeleteClassCascade(db *gorm.DB, class *models.Class) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", class.ID).Delete(&models.ClassCourse{}).Error; err != nil {
			return err
		}
		if err := tx.Where("class_id = ?", class.ID).Delete(&models.ClassStudent{}).Error; err != nil {
			return err
		}
		return tx.Delete(class).Error
	})
}

// DeleteCourseCascade removes the course and all of its assignment rows in
// one transaction.
func DeleteCourseCascade(db *gorm.DB, course *models.Course) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", course.ID).Delete(&models.ClassCourse{}).Error; err != nil {
			return err
		}
		return tx.Delete(course).Error
	})
}
