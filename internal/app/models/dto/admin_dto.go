package dto

// CreateAdminRequest represents the create-admin payload
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePasswordRequest represents an admin password reset for a user
type UpdatePasswordRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserSummary is the per-user entry of the list-users response.
// Password hashes are deliberately not part of this view.
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
