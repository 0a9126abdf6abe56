package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rxcourier/config"
	deliveryHttp "rxcourier/internal/delivery/http"
	"rxcourier/internal/delivery/http/handler"
	"rxcourier/internal/delivery/http/middleware"
	"rxcourier/internal/domain/entity"
	"rxcourier/internal/infrastructure/cache"
	"rxcourier/internal/infrastructure/database"
	"rxcourier/internal/repository"
	"rxcourier/internal/service"
	"rxcourier/internal/usecase"
	"rxcourier/pkg/jwt"
	"rxcourier/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Clinic{},
		&entity.Admin{},
		&entity.DeliveryBoy{},
		&entity.Prescription{},
		&entity.Bill{},
		&entity.Notification{},
		&entity.AuditLog{},
	)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	adminRepo := repository.NewAdminRepository()
	clinicRepo := repository.NewClinicRepository()
	deliveryBoyRepo := repository.NewDeliveryBoyRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	billRepo := repository.NewBillRepository()
	notificationRepo := repository.NewNotificationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	sequenceService := service.NewSequenceService(db, log, prescriptionRepo)
	billingCalculator := service.NewBillingCalculator()
	otpService := service.NewOTPService(redisClient, log, cfg.OTP.Expiry)
	auditService := service.NewAuditService(db, log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, notificationRepo, auditService, otpService, jwtService, redisClient)
	adminUsecase := usecase.NewAdminUsecase(db, log, adminRepo, jwtService, redisClient)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, billRepo, deliveryBoyRepo, notificationRepo, sequenceService, auditService)
	financeUsecase := usecase.NewFinanceUsecase(db, log, prescriptionRepo, userRepo, billingCalculator, auditService)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, prescriptionRepo, userRepo)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, userRepo)
	deliveryBoyUsecase := usecase.NewDeliveryBoyUsecase(db, log, deliveryBoyRepo, auditService)
	clinicUsecase := usecase.NewClinicUsecase(db, log, clinicRepo, userRepo, otpService)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	financeHandler := handler.NewFinanceHandler(financeUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	deliveryBoyHandler := handler.NewDeliveryBoyHandler(deliveryBoyUsecase, customValidator)
	clinicHandler := handler.NewClinicHandler(clinicUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		adminHandler,
		prescriptionHandler,
		financeHandler,
		dashboardHandler,
		doctorHandler,
		deliveryBoyHandler,
		clinicHandler,
		notificationHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
