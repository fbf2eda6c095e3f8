package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models/dto"
	"github.com/ascent/coursebuddy/internal/app/services"
	"github.com/ascent/coursebuddy/internal/middleware"
)

// AdminController handles admin-only user management endpoints
type AdminController struct {
	userService *services.UserService
	logger      zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(userService *services.UserService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		userService: userService,
		logger:      logger,
	}
}

// CreateAdmin creates a new user with the ADMIN role
func (c *AdminController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Username and password are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	summary, err := c.userService.CreateAdmin(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Create admin failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Admin user created successfully",
		"username": summary.Username,
		"role":     summary.Role,
	})
}

// ListUsers lists all users without password hashes
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.userService.ListUsers(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("List users failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// UpdatePassword resets a user's password
func (c *AdminController) UpdatePassword(ctx *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Username and password are required")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.userService.UpdatePassword(ctx.Request.Context(), &req); err != nil {
		c.logger.Warn().Err(err).Str("username", req.Username).Msg("Update password failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Password updated successfully for user: " + req.Username,
	})
}
