package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/app/repositories"
	"github.com/ascent/coursebuddy/internal/config"
	"github.com/ascent/coursebuddy/internal/pkg/apperrors"
	"github.com/ascent/coursebuddy/internal/pkg/auth"
)

// CreateDefaultAdmin creates the default admin user if it doesn't exist.
// Without it a fresh deployment would have no way to reach the admin-only
// endpoints.
func CreateDefaultAdmin(ctx context.Context, userRepo repositories.IUserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	existing, err := userRepo.GetByUsername(ctx, cfg.Admin.Username)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	if existing != nil {
		lgr.Info().Str("username", existing.Username).Str("role", string(existing.Role)).Msg("Default admin already exists")
		return nil
	}

	hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: cfg.Admin.Username,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		// Another instance may have seeded concurrently
		if errors.Is(err, apperrors.ErrUsernameAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("username", admin.Username).Msg("Default admin user created")
	return nil
}
