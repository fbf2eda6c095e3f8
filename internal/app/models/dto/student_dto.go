package dto

// CreateStudentRequest represents the student profile created right after
// registration. The owning user is referenced by username, not id.
type CreateStudentRequest struct {
	FirstName        string  `json:"firstName" binding:"required"`
	LastName         string  `json:"lastName" binding:"required"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	HighestEducation *string `json:"highestEducation"`
}

// UpdateStudentRequest represents a student profile update
type UpdateStudentRequest struct {
	FirstName        string  `json:"firstName" binding:"required"`
	LastName         string  `json:"lastName" binding:"required"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	HighestEducation *string `json:"highestEducation"`
}

// EnrollmentRequest carries the course id for the self-service
// enroll/unenroll endpoints.
type EnrollmentRequest struct {
	CourseID int64 `json:"courseId" binding:"required,min=1"`
}
