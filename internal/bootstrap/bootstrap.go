package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/skuldata/skuldata/docs" // Import generated swagger docs
	appControllers "github.com/skuldata/skuldata/internal/app/controllers"
	appMigrations "github.com/skuldata/skuldata/internal/app/migrations"
	appRepos "github.com/skuldata/skuldata/internal/app/repositories"
	appRoutes "github.com/skuldata/skuldata/internal/app/routes"
	appServices "github.com/skuldata/skuldata/internal/app/services"
	"github.com/skuldata/skuldata/internal/config"
	"github.com/skuldata/skuldata/internal/db"
	appMiddleware "github.com/skuldata/skuldata/internal/middleware"
	pkgAuth "github.com/skuldata/skuldata/internal/pkg/auth"
	"github.com/skuldata/skuldata/internal/pkg/helpers"
	"github.com/skuldata/skuldata/internal/pkg/logger"
	"github.com/skuldata/skuldata/internal/scheduler"
	"github.com/skuldata/skuldata/internal/scheduler/jobs"
	"github.com/skuldata/skuldata/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Services            *appServices.Services
	AuthController      *appControllers.AuthController
	DashboardController *appControllers.DashboardController
	TeacherController   *appControllers.TeacherController
	ParentController    *appControllers.ParentController
	StudentController   *appControllers.StudentController
	DocumentController  *appControllers.DocumentController
	ReportController    *appControllers.ReportController
	ScheduleController  *appControllers.ScheduleController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
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
// seeds the default schedule.
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
	lgr.Info().Msg("Database connection successfully established.")

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

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Schedule seeding failures shouldn't block API startup
		lgr.Error().Err(err).Msg("Failed to seed default schedule, proceeding anyway...")
	}

	return dbPool, nil
}

// SetupRedis connects the Redis client used by the result backend
func SetupRedis(cfg *config.Config, lgr zerolog.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.JWTService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.Services.AuthService)
	deps.DashboardController = appControllers.NewDashboardController(deps.Services.DashboardService)
	deps.TeacherController = appControllers.NewTeacherController(deps.Services.TeacherService)
	deps.ParentController = appControllers.NewParentController(deps.Services.ParentService)
	deps.StudentController = appControllers.NewStudentController(deps.Services.StudentService)
	deps.DocumentController = appControllers.NewDocumentController(deps.Services.DocumentService)
	deps.ReportController = appControllers.NewReportController(deps.Services.ReportService)
	deps.ScheduleController = appControllers.NewScheduleController(deps.Services.ScheduleService)

	return deps, nil
}

// BuildScheduler wires the report pipeline jobs into a scheduler instance.
// The worker binary calls this after the shared database setup.
func BuildScheduler(cfg *config.Config, repos *appRepos.Repositories, redisClient *redis.Client) *scheduler.Scheduler {
	registry := jobs.NewRegistry()
	pipeline := jobs.NewPipeline(repos, cfg.Scheduler.ReportRetentionDays)
	pipeline.RegisterAll(registry)

	results := scheduler.NewResultStore(redisClient,
		helpers.ParseDuration(cfg.Scheduler.ResultExpires, 168*time.Hour))

	return scheduler.New(repos.PeriodicTaskRepository, registry, results, scheduler.Options{
		Workers:        cfg.Scheduler.Workers,
		QueueSize:      cfg.Scheduler.QueueSize,
		ReloadInterval: helpers.ParseDuration(cfg.Scheduler.ReloadInterval, time.Minute),
		TaskTimeLimit:  helpers.ParseDuration(cfg.Scheduler.TaskTimeLimit, 30*time.Minute),
	})
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

	// Setup Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json"), ginSwagger.DefaultModelsExpandDepth(1)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DashboardController,
		deps.TeacherController,
		deps.ParentController,
		deps.StudentController,
		deps.DocumentController,
		deps.ReportController,
		deps.ScheduleController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
