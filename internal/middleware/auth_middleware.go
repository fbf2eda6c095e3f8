package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ascent/coursebuddy/internal/app/models"
	"github.com/ascent/coursebuddy/internal/app/models/dto"
	"github.com/ascent/coursebuddy/internal/app/repositories"
	"github.com/ascent/coursebuddy/internal/pkg/auth"
)

// principalKey is the gin context key the authenticated principal lives under
const principalKey = "principal"

// Principal is the authenticated identity attached to a request after
// successful token validation.
type Principal struct {
	UserID   int64
	Username string
	Role     models.RoleType
}

// CurrentPrincipal returns the principal attached to the request, if any
func CurrentPrincipal(c *gin.Context) (*Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*Principal)
	return principal, ok
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	userRepo   repositories.IUserRepository
	logger     zerolog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, userRepo repositories.IUserRepository, logger zerolog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Authenticate runs on every request before any authorization check. It
// never aborts: a missing or broken token leaves the request anonymous and
// the role checks downstream do the actual blocking. Failures are logged so
// a misbehaving client is still visible.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			m.logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Malformed Authorization header, proceeding unauthenticated")
			c.Next()
			return
		}

		username, err := m.jwtService.ExtractUsername(tokenString)
		if err != nil {
			m.logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("Token rejected, proceeding unauthenticated")
			c.Next()
			return
		}

		user, err := m.userRepo.GetByUsername(c.Request.Context(), username)
		if err != nil {
			m.logger.Warn().Err(err).Str("username", username).Str("path", c.Request.URL.Path).Msg("Token subject lookup failed, proceeding unauthenticated")
			c.Next()
			return
		}

		if !m.jwtService.ValidateToken(tokenString, user.Username) {
			m.logger.Warn().Str("username", username).Str("path", c.Request.URL.Path).Msg("Token validation failed, proceeding unauthenticated")
			c.Next()
			return
		}

		c.Set(principalKey, &Principal{
			UserID:   user.ID,
			Username: user.Username,
			Role:     user.Role,
		})

		c.Next()
	}
}

// RequireAuth rejects requests that carry no authenticated principal
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// RequireRole rejects requests whose principal is missing or holds a
// different role
func (m *AuthMiddleware) RequireRole(requiredRole models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if principal.Role != requiredRole {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied")
			errorDetail = errorDetail.WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}
