package models

import "time"

// Class is owned exclusively by the teacher that created it. Students and
// courses are attached through the association tables, never embedded.
type Class struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null" json:"name"`
	SectionNumber string    `gorm:"size:20;not null" json:"section_number"`
	TeacherID     uint      `gorm:"not null;index" json:"teacher_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
