package app

import (
	"context"
	"errors"
	"fmt"

	"nibash_backend/internal/auth"
	"nibash_backend/internal/config"
	"nibash_backend/internal/handlers"
	"nibash_backend/internal/logger"
	"nibash_backend/internal/middleware"
	"nibash_backend/internal/models"
	"nibash_backend/internal/pkg/email"
	"nibash_backend/internal/repositories"
	"nibash_backend/internal/routes"
	"nibash_backend/internal/services"
	"nibash_backend/internal/validator"
	"nibash_backend/internal/workers"
	"nibash_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	if err := config.LoadConfig(); err != nil {
		logger.Init("production")
		logger.Fatal("Invalid configuration", "error", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		// Surface unique-index violations as gorm.ErrDuplicatedKey so the
		// repositories can translate them.
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(
		&models.User{},
		&models.Professional{},
		&models.Wallet{},
		&models.ServiceRequest{},
		&models.Payment{},
	); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	redisClient := initRedis(cfg)
	defer func() {
		if redisClient != nil {
			redisClient.Close()
		}
	}()

	ginRouter, _ := SetupRouter(cfg, gormDB, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, gormDB, cfg)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the fully wired gin engine. Split out from Run so the
// integration suite can mount the same router on a test server.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client) (*gin.Engine, *services.ServiceContainer) {
	userRepo := repositories.NewUserRepository(gormDB)
	professionalRepo := repositories.NewProfessionalRepository(gormDB)
	requestRepo := repositories.NewServiceRequestRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)

	emailProvider := email.NewProviderFromConfig(cfg)
	if emailProvider == nil {
		logger.Warn("SMTP not configured, email sending disabled")
	}

	container := services.NewServiceContainer(
		gormDB, cfg,
		userRepo, professionalRepo, requestRepo, paymentRepo,
		emailProvider,
	)

	customValidator := validator.New()
	appHandlers := handlers.NewAppHandlers(container, customValidator)

	limiter := middleware.NewRateLimiter(cfg, redisClient)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, limiter, cfg)

	return ginRouter, container
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.ErrMethodNotAllowed)
	})
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func initRedis(cfg *config.Config) *redis.Client {
	var opt *redis.Options
	if cfg.Redis.URL != "" {
		parsed, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Warn("Failed to parse redis URL, rate limiting falls back to memory", "error", err)
			return nil
		}
		opt = parsed
	} else if cfg.Redis.Addr != "" {
		opt = &redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password}
	} else {
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, rate limiting falls back to memory", "error", err)
		client.Close()
		return nil
	}
	logger.Info("Redis connected")
	return client
}

func startWorkers(ctx context.Context, gormDB *gorm.DB, cfg *config.Config) {
	userRepo := repositories.NewUserRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)

	workers.NewPasswordMigrationWorker(userRepo).Start(ctx)
	workers.NewPaymentWorker(paymentRepo, cfg).Start(ctx)
	logger.Info("Background workers started")
}

// seedFirstAdmin bootstraps the first admin account from config. Without it
// a fresh deployment has no way to reach the admin surface.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	var existing models.User
	result := db.Where("lower(email) = lower(?)", cfg.FirstAdminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists, skipping creation", "email", cfg.FirstAdminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashed, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:    cfg.FirstAdminEmail,
		Password: hashed,
		FullName: "Administrator",
		Role:     models.UserRoleAdmin,
		Status:   models.UserStatusActive,
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("First admin user created", "email", cfg.FirstAdminEmail)
	return nil
}
