package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/app/models/dto"
	"github.com/ascent/coursebuddy/internal/app/repositories"
	"github.com/ascent/coursebuddy/internal/pkg/auth"
)

// UserService handles admin-facing user management
type UserService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateAdmin creates a user with the ADMIN role. A taken username surfaces
// as apperrors.ErrUsernameAlreadyExists from the repository.
func (s *UserService) CreateAdmin(ctx context.Context, req *dto.CreateAdminRequest) (*dto.UserSummary, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	admin := &models.User{
		Username: req.Username,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
	}

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", admin.Username).Msg("Admin user created")

	return &dto.UserSummary{
		ID:       admin.ID,
		Username: admin.Username,
		Role:     string(admin.Role),
	}, nil
}

// ListUsers returns every user without password hashes
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserSummary, error) {
	users, err := s.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, dto.UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Role:     string(user.Role),
		})
	}

	return summaries, nil
}

// UpdatePassword resets a user's password to a new hash
func (s *UserService) UpdatePassword(ctx context.Context, req *dto.UpdatePasswordRequest) error {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, req.Username, hashedPassword); err != nil {
		return err
	}

	s.logger.Info().Str("username", req.Username).Msg("Password updated")
	return nil
}
