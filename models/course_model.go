package models

import "time"

const (
	DifficultyEasy     = "easy"
	DifficultyMedium   = "medium"
	DifficultyHard     = "hard"
	DifficultyAdvanced = "advanced"
)

// DateLayout is the wire format for course dates and date filters.
const DateLayout = "2006-01-02"

type Course struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"size:100;not null" json:"title"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	Date             time.Time `gorm:"type:date;not null" json:"-"`
	TotalMarks       int       `gorm:"not null" json:"total_marks"`
	DifficultyRating string    `gorm:"size:20;not null" json:"difficulty_rating"`
	TeacherID        uint      `gorm:"not null;index" json:"teacher_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CourseResponse carries the date as a plain YYYY-MM-DD string.
type CourseResponse struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Date             string    `json:"date"`
	TotalMarks       int       `json:"total_marks"`
	DifficultyRating string    `json:"difficulty_rating"`
	TeacherID        uint      `json:"teacher_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (c *Course) Response() CourseResponse {
	return CourseResponse{
		ID:               c.ID,
		Title:            c.Title,
		Description:      c.Description,
		Date:             c.Date.Format(DateLayout),
		TotalMarks:       c.TotalMarks,
		DifficultyRating: c.DifficultyRating,
		TeacherID:        c.TeacherID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func CourseResponses(courses []Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, courses[i].Response())
	}
	return out
}
