package models

import "time"

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:120;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Role      string    `gorm:"size:20;not null;default:'student'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }

func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// UserSummary is the compact user shape embedded in other resources.
// Email is left out when serializing students to their classmates' views.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
}

func (u *User) Summary(includeEmail bool) UserSummary {
	s := UserSummary{ID: u.ID, Name: u.Name, Role: u.Role}
	if includeEmail {
		s.Email = u.Email
	}
	return s
}
