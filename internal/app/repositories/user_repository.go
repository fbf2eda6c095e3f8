package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/pkg/apperrors"
	"github.com/ascent/coursebuddy/internal/pkg/dberrors"
	"github.com/ascent/coursebuddy/internal/pkg/logger"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user and sets its generated id. A duplicate username
// surfaces as apperrors.ErrUsernameAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "password", "role").
		Values(user.Username, user.Password, user.Role).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_username_key") {
			logger.Warn().Str("username", user.Username).Msg("Attempted to create user with duplicate username")
			return apperrors.ErrUsernameAlreadyExists
		}
		logger.Error().Err(err).Str("username", user.Username).Msg("Error executing create user query")
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "username", "password", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	return r.scanUser(ctx, sql, args)
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "username", "password", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"username": username}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	return r.scanUser(ctx, sql, args)
}

func (r *UserRepository) scanUser(ctx context.Context, sql string, args []interface{}) (*models.User, error) {
	var user models.User
	err := r.db.QueryRow(ctx, sql, args...).Scan(
		&user.ID, &user.Username, &user.Password, &user.Role, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetAll retrieves every user, newest last
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	sql, args, err := r.sb.Select("id", "username", "password", "role", "created_at").
		From("users").
		OrderBy("id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list users query")
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Password, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user row: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	return users, nil
}

// UpdatePassword replaces the stored password hash for a username
func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	sql, args, err := r.sb.Update("users").
		Set("password", passwordHash).
		Where(squirrel.Eq{"username": username}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Error executing update password query")
		return fmt.Errorf("error updating password: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}
