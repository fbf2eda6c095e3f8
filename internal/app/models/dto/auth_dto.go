package dto

import "github.com/ascent/coursebuddy/internal/app/models"

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required"`
	Role     models.RoleType `json:"role"` // Optional; defaults to STUDENT
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is the payload returned by register and login.
// The same shape is reused for failures with only Message populated.
type AuthResponse struct {
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	Token    string `json:"token,omitempty"`
	Message  string `json:"message"`
}
