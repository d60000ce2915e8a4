package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-booking-api/config"
	deliveryHttp "health-booking-api/internal/delivery/http"
	"health-booking-api/internal/delivery/http/handler"
	"health-booking-api/internal/delivery/http/middleware"
	"health-booking-api/internal/domain/entity"
	"health-booking-api/internal/infrastructure/cache"
	"health-booking-api/internal/infrastructure/database"
	"health-booking-api/internal/repository"
	"health-booking-api/internal/service"
	"health-booking-api/internal/usecase"
	"health-booking-api/pkg/validator"

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
	applyLogLevel(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

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

func applyLogLevel(raw string) {
	if raw == "" {
		return
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		logrus.Warnf("Unknown log level %q, keeping info", raw)
		return
	}
	logrus.SetLevel(level)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	healthIndexRepo := repository.NewHealthIndexRepository(db)

	// Initialize services
	eventPublisher := service.NewRedisEventPublisher(redisClient, cfg.Events.BusName, log)
	groupDirectory := service.NewGroupDirectory(redisClient)
	predictClient := service.NewPredictClient(cfg.Predict.ModelURL, cfg.Predict.Timeout, log)

	// Initialize usecases
	healthIndexUsecase := usecase.NewHealthIndexUsecase(log, healthIndexRepo, appointmentRepo)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, userRepo, appointmentRepo, healthIndexUsecase, eventPublisher)
	doctorUsecase := usecase.NewDoctorUsecase(log, userRepo)
	confirmationUsecase := usecase.NewUserConfirmationUsecase(log, userRepo, groupDirectory)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase)
	healthIndexHandler := handler.NewHealthIndexHandler(healthIndexUsecase)
	userHandler := handler.NewUserHandler(confirmationUsecase, customValidator)
	predictHandler := handler.NewPredictHandler(predictClient, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware()
	roleGate := middleware.NewRoleGate(authorizationPolicy(cfg), defaultIdentities(cfg), log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(appointmentHandler, doctorHandler, healthIndexHandler, userHandler, predictHandler, authMiddleware, roleGate, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

func authorizationPolicy(cfg *config.Config) middleware.AuthorizationPolicy {
	if cfg.Auth.DemoMode {
		logrus.Warn("Demo mode enabled; role enforcement is disabled")
		return middleware.PolicyDisabled
	}
	return middleware.PolicyEnforced
}

func defaultIdentities(cfg *config.Config) map[entity.Role]string {
	return map[entity.Role]string{
		entity.RolePatient: cfg.Auth.DefaultPatientID,
		entity.RoleDoctor:  cfg.Auth.DefaultDoctorID,
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
