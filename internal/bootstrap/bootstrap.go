package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ascent/coursebuddy/internal/app/controllers"
	appMigrations "github.com/ascent/coursebuddy/internal/app/migrations"
	appRepos "github.com/ascent/coursebuddy/internal/app/repositories"
	appRoutes "github.com/ascent/coursebuddy/internal/app/routes"
	appServices "github.com/ascent/coursebuddy/internal/app/services"
	"github.com/ascent/coursebuddy/internal/config"
	"github.com/ascent/coursebuddy/internal/db"
	appMiddleware "github.com/ascent/coursebuddy/internal/middleware"
	pkgAuth "github.com/ascent/coursebuddy/internal/pkg/auth"
	"github.com/ascent/coursebuddy/internal/pkg/logger"
	"github.com/ascent/coursebuddy/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService       *appServices.AuthService
	UserService       *appServices.UserService
	StudentService    *appServices.StudentService
	CourseService     *appServices.CourseService
	EnrollmentService *appServices.EnrollmentService

	AuthController    *appControllers.AuthController
	AdminController   *appControllers.AdminController
	StudentController *appControllers.StudentController
	CourseController  *appControllers.CourseController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations, and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	userRepo := appRepos.NewUserRepository(database.Pool)
	if err := seed.CreateDefaultAdmin(context.Background(), userRepo, cfg, lgr); err != nil {
		// Startup continues; admin endpoints stay unreachable until seeded
		lgr.Error().Err(err).Msg("Failed to seed default admin, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.GetTokenExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.User, deps.JWTService, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.User, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.Student, deps.Repos.User, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.Course, lgr)
	deps.EnrollmentService = appServices.NewEnrollmentService(
		deps.Repos.Enrollment,
		deps.Repos.Student,
		deps.Repos.Course,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.User, lgr)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.UserService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.EnrollmentService, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.EnrollmentService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()
	router.Use(appMiddleware.CORS(cfg.Server.CORSOrigin))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AdminController,
		deps.StudentController,
		deps.CourseController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
