package models

import "time"

// Association rows reference ids on both sides; the "other side" of a link
// is always resolved with an explicit query, never a loaded back-pointer.

// ClassCourse assigns a course to a class. The (class_id, course_id) pair
// is unique, so assigning twice is a no-op at the store level.
type ClassCourse struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClassID   uint      `gorm:"not null;uniqueIndex:uq_class_course" json:"class_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:uq_class_course" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ClassStudent enrolls a student in a class. The (class_id, student_id)
// pair is unique, so enrollment is idempotent.
type ClassStudent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ClassID      uint      `gorm:"not null;uniqueIndex:uq_class_student" json:"class_id"`
	StudentID    uint      `gorm:"not null;uniqueIndex:uq_class_student" json:"student_id"`
	EnrolledDate time.Time `gorm:"autoCreateTime" json:"enrolled_date"`
}
