package models

import (
	"time"
)

// Student defines the student model based on the 'students' table.
// Each student owns exactly one user account; the link is set at creation
// and never changes afterwards.
type Student struct {
	ID               int64     `json:"id" db:"id" example:"1"`
	UserID           int64     `json:"userId" db:"user_id" example:"5"`
	FirstName        string    `json:"firstName" db:"first_name" example:"Jane"`
	LastName         string    `json:"lastName" db:"last_name" example:"Doe"`
	Phone            *string   `json:"phone,omitempty" db:"phone"`
	Address          *string   `json:"address,omitempty" db:"address"`
	HighestEducation *string   `json:"highestEducation,omitempty" db:"highest_education"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	User    *User     `json:"user,omitempty"`    // Associated user account, password never serialized
	Courses []*Course `json:"courses,omitempty"` // Enrolled course set
}
