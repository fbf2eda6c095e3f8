package models

import (
	"time"
)

// Course represents a course students can enroll in.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	CourseCode  string    `json:"courseCode" db:"course_code"` // Unique short code, e.g. "CS101"
	CourseName  string    `json:"courseName" db:"course_name"`
	Description *string   `json:"description,omitempty" db:"description"` // Nullable
	Credits     *int      `json:"credits,omitempty" db:"credits"`         // Nullable
	Instructor  *string   `json:"instructor,omitempty" db:"instructor"`   // Free-form instructor name
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	CreatedBy   *int64    `json:"createdBy,omitempty" db:"created_by"` // User who created the course (nullable)
}
