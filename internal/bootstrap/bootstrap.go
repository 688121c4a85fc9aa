package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/cfascholars/backend/internal/app/controllers"
	appMigrations "github.com/cfascholars/backend/internal/app/migrations"
	appRepos "github.com/cfascholars/backend/internal/app/repositories"
	appRoutes "github.com/cfascholars/backend/internal/app/routes"
	appServices "github.com/cfascholars/backend/internal/app/services"
	"github.com/cfascholars/backend/internal/config"
	"github.com/cfascholars/backend/internal/db"
	appMiddleware "github.com/cfascholars/backend/internal/middleware"
	"github.com/cfascholars/backend/internal/pkg/logger"
	"github.com/cfascholars/backend/internal/pkg/session"
	"github.com/cfascholars/backend/internal/pkg/storage"
	"github.com/cfascholars/backend/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                   *appRepos.Repositories
	Services                *appServices.Services
	SessionStore            session.Store
	BlobStore               storage.BlobStore
	AuthMiddleware          *appMiddleware.AuthMiddleware
	UserController          *appControllers.UserController
	AdminUserController     *appControllers.AdminUserController
	ApplicationController   *appControllers.ApplicationController
	ChecklistController     *appControllers.ChecklistController
	ReimbursementController *appControllers.ReimbursementController
	AcceptanceController    *appControllers.AcceptanceController
	FileController          *appControllers.FileController
	Logger                  zerolog.Logger
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// newSessionStore selects the session backend from configuration.
func newSessionStore(cfg *config.Config, dbPool *pgxpool.Pool) (session.Store, error) {
	ttl := cfg.SessionTTL()
	switch strings.ToLower(cfg.Session.Store) {
	case "postgres", "":
		return session.NewPostgresStore(dbPool, ttl), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Session.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Session.RedisAddr, err)
		}
		return session.NewRedisStore(client, ttl), nil
	case "memory":
		return session.NewMemoryStore(ttl), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// newBlobStore selects the blob storage backend from configuration.
func newBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case "s3":
		return storage.NewS3Storage(context.Background(), storage.S3Config{
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
		})
	case "local", "":
		baseURL := "http://localhost:" + cfg.Server.Port + "/uploads"
		return storage.NewLocalStorage(cfg.Storage.LocalPath, baseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.SessionStore, err = newSessionStore(cfg, dbPool)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize session store")
		return nil, err
	}

	deps.BlobStore, err = newBlobStore(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize blob storage")
		return nil, err
	}

	deps.Services = appServices.NewServices(deps.Repos, deps.SessionStore, deps.BlobStore)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.SessionStore,
		deps.Repos.UserRepository,
		cfg.Session.CookieName,
	)

	cookie := appControllers.SessionCookie{
		Name:   cfg.Session.CookieName,
		MaxAge: int(cfg.SessionTTL().Seconds()),
		Secure: cfg.IsProduction(),
	}
	deps.UserController = appControllers.NewUserController(deps.Services.UserService, cookie)
	deps.AdminUserController = appControllers.NewAdminUserController(deps.Services.UserService)
	deps.ApplicationController = appControllers.NewApplicationController(deps.Services.ApplicationService)
	deps.ChecklistController = appControllers.NewChecklistController(deps.Services.ChecklistService)
	deps.ReimbursementController = appControllers.NewReimbursementController(deps.Services.ReimbursementService)
	deps.AcceptanceController = appControllers.NewAcceptanceController(deps.Services.AcceptanceService)
	deps.FileController = appControllers.NewFileController(deps.Services.FileService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS(cfg.Server.FrontendAddress))

	if strings.ToLower(cfg.Storage.Driver) != "s3" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	appRoutes.SetupRouter(router,
		deps.UserController,
		deps.AdminUserController,
		deps.ApplicationController,
		deps.ChecklistController,
		deps.ReimbursementController,
		deps.AcceptanceController,
		deps.FileController,
		deps.AuthMiddleware,
	)

	return router
}
