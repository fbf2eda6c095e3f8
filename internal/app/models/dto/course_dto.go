package dto

// CreateCourseRequest represents a course creation payload
type CreateCourseRequest struct {
	CourseCode  string  `json:"courseCode" binding:"required,max=20"`
	CourseName  string  `json:"courseName" binding:"required,max=200"`
	Description *string `json:"description"`
	Credits     *int    `json:"credits"`
	Instructor  *string `json:"instructor"`
}

// UpdateCourseRequest represents a course update payload
type UpdateCourseRequest struct {
	CourseCode  string  `json:"courseCode" binding:"required,max=20"`
	CourseName  string  `json:"courseName" binding:"required,max=200"`
	Description *string `json:"description"`
	Credits     *int    `json:"credits"`
	Instructor  *string `json:"instructor"`
}
