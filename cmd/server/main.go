package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"idrx-gate.backend/internal/config"
	"idrx-gate.backend/internal/infrastructure/idrx"
	"idrx-gate.backend/internal/infrastructure/jobs"
	"idrx-gate.backend/internal/infrastructure/repositories"
	"idrx-gate.backend/internal/interfaces/http/handlers"
	"idrx-gate.backend/internal/interfaces/http/middleware"
	"idrx-gate.backend/internal/usecases"
	"idrx-gate.backend/pkg/jwt"
	"idrx-gate.backend/pkg/logger"
	"idrx-gate.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	bankAccountRepo := repositories.NewBankAccountRepository(db)

	// Initialize provider client
	idrxClient := idrx.NewClient(idrx.Config{
		BaseURL:   cfg.IDRX.BaseURL,
		APIKey:    cfg.IDRX.APIKey,
		APISecret: cfg.IDRX.APISecret,
		Timeout:   cfg.IDRX.Timeout,
	})

	// Initialize usecases
	userUsecase := usecases.NewUserUsecase(userRepo)
	// OnboardingUsecase needs Config for Encryption Key
	onboardingUsecase, err := usecases.NewOnboardingUsecase(userRepo, idrxClient, cfg.Security.CredentialEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize onboarding usecase: %w", err)
	}
	bankAccountUsecase := usecases.NewBankAccountUsecase(userRepo, bankAccountRepo, idrxClient)
	transactionUsecase := usecases.NewTransactionUsecase(idrxClient, onboardingUsecase)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userUsecase)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingUsecase)
	bankAccountHandler := handlers.NewBankAccountHandler(bankAccountUsecase)
	transactionHandler := handlers.NewTransactionHandler(transactionUsecase)

	// Create auth middleware
	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	catalogJob := jobs.NewBankCatalogRefreshJob(idrxClient, 5*time.Minute)
	go catalogJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		userHandler:        userHandler,
		onboardingHandler:  onboardingHandler,
		bankAccountHandler: bankAccountHandler,
		transactionHandler: transactionHandler,
		authMiddleware:     authMiddleware,
	})

	// Print all registered routes for debugging
	log.Println("📋 Registered Routes:")
	for _, route := range r.Routes() {
		log.Printf("   %s %s", route.Method, route.Path)
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		catalogJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 IDRX-Gate Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
