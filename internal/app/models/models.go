package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin   RoleType = "ADMIN"
	RoleStudent RoleType = "STUDENT"
)

// Valid reports whether the role is one of the known roles.
func (r RoleType) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}
