// Package services contains the application business logic.
//
// Services defined in this package:
// - AuthService: registration, login and token issuance
// - UserService: admin-facing user management
// - StudentService: student profile CRUD
// - CourseService: course CRUD
// - EnrollmentService: student↔course membership management
package services
