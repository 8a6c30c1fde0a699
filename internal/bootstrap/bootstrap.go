package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/citycare/citycare/internal/app/controllers"
	appMigrations "github.com/citycare/citycare/internal/app/migrations"
	appRepos "github.com/citycare/citycare/internal/app/repositories"
	appRoutes "github.com/citycare/citycare/internal/app/routes"
	appServices "github.com/citycare/citycare/internal/app/services"
	"github.com/citycare/citycare/internal/config"
	"github.com/citycare/citycare/internal/db"
	appMiddleware "github.com/citycare/citycare/internal/middleware"
	pkgAuth "github.com/citycare/citycare/internal/pkg/auth"
	"github.com/citycare/citycare/internal/pkg/filestorage"
	"github.com/citycare/citycare/internal/pkg/helpers"
	"github.com/citycare/citycare/internal/pkg/logger"
	"github.com/citycare/citycare/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	IssueService           appServices.IssueService
	AccessCodeService      appServices.AccessCodeService
	NotificationService    appServices.NotificationService
	CityService            appServices.CityService
	DepartmentService      appServices.DepartmentService
	AdminService           appServices.AdminService
	AuthController         *appControllers.AuthController
	IssueController        *appControllers.IssueController
	StaffController        *appControllers.StaffController
	NotificationController *appControllers.NotificationController
	DirectoryController    *appControllers.DirectoryController
	AdminController        *appControllers.AdminController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	FileStorage            *filestorage.LocalStorage
	RedisClient            *redis.Client
	Logger                 zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied")

	if err := seed.CreateDefaultData(context.Background(), database, cfg.Seed.AdminPassword); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// SetupRedis connects the optional redis client used by the issue rate
// limiter. A missing redis address disables the limiter.
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) *redis.Client {
	client, err := db.NewRedisClient(cfg)
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, issue rate limiter disabled")
		return nil
	}
	if client != nil {
		lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	}
	return client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, redisClient *redis.Client, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr, RedisClient: redisClient}

	deps.Repos = appRepos.NewRepositories(database)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AccessCodeService = appServices.NewAccessCodeService(
		deps.Repos.AccessCodeRepository,
		deps.Repos.CityRepository,
		deps.Repos.DepartmentRepository,
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.CityRepository,
		deps.Repos.DepartmentRepository,
		deps.AccessCodeService,
		deps.JWTService,
	)
	deps.IssueService = appServices.NewIssueService(
		deps.Repos.IssueRepository,
		deps.Repos.RatingRepository,
		deps.Repos.UserRepository,
		deps.Repos.CityRepository,
		deps.Repos.DepartmentRepository,
		cfg.Policy.ForwardOnlyStatus,
	)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository)
	deps.CityService = appServices.NewCityService(deps.Repos.CityRepository)
	deps.DepartmentService = appServices.NewDepartmentService(deps.Repos.DepartmentRepository)
	deps.AdminService = appServices.NewAdminService(
		deps.Repos.IssueRepository,
		deps.Repos.CityRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.AccessCodeRepository,
		deps.Repos.UserRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.IssueController = appControllers.NewIssueController(deps.IssueService, deps.FileStorage, cfg.Policy.RejectInvalidImage)
	deps.StaffController = appControllers.NewStaffController(deps.IssueService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)
	deps.DirectoryController = appControllers.NewDirectoryController(deps.CityService, deps.DepartmentService)
	deps.AdminController = appControllers.NewAdminController(
		deps.CityService,
		deps.DepartmentService,
		deps.AccessCodeService,
		deps.AdminService,
	)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	rateLimit := 0
	if cfg.RateLimiterEnabled() {
		rateLimit = cfg.Policy.IssueRateLimit
	}

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.IssueController,
		deps.StaffController,
		deps.NotificationController,
		deps.DirectoryController,
		deps.AdminController,
		deps.AuthMiddleware,
		deps.RedisClient,
		rateLimit,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
