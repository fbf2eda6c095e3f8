package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/app/models/dto"
	"github.com/ascent/coursebuddy/internal/app/repositories"
	"github.com/ascent/coursebuddy/internal/pkg/apperrors"
	"github.com/ascent/coursebuddy/internal/pkg/auth"
)

// AuthService handles registration and login
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Register hashes the password, persists the user and issues a token
// immediately; registering implies being logged in.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.NewValidationError("username cannot be empty")
	}
	if req.Password == "" {
		return nil, apperrors.NewValidationError("password cannot be empty")
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("role must be ADMIN or STUDENT")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: hashedPassword,
		Role:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("User registered")

	return &dto.AuthResponse{
		Username: user.Username,
		Role:     string(user.Role),
		Token:    token,
		Message:  "User registered successfully",
	}, nil
}

// Login verifies the submitted credentials and issues a fresh token carrying
// the stored role. An unknown username and a wrong password both surface as
// the same ErrInvalidCredentials so the response leaks nothing about which
// part was wrong.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("User logged in")

	return &dto.AuthResponse{
		Username: user.Username,
		Role:     string(user.Role),
		Token:    token,
		Message:  "Login successful",
	}, nil
}
