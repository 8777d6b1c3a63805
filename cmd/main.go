package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/asmrapi/backend/docs"
	"github.com/asmrapi/backend/internal/auth"
	"github.com/asmrapi/backend/internal/config"
	"github.com/asmrapi/backend/internal/handlers"
	"github.com/asmrapi/backend/internal/locator"
	"github.com/asmrapi/backend/internal/logger"
	"github.com/asmrapi/backend/internal/metrics"
	"github.com/asmrapi/backend/internal/middleware"
	"github.com/asmrapi/backend/internal/models"
	"github.com/asmrapi/backend/internal/repositories"
	"github.com/asmrapi/backend/internal/services"
	"github.com/asmrapi/backend/internal/storage"
	"github.com/asmrapi/backend/internal/streaming"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title ASMR Audio Content API
// @version 1.0
// @description Catalogue, streaming and administration API for audio contents

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:5159
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	startedAt := time.Now()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting audio content API", zap.String("env", cfg.Server.Env))

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Content directories
	for _, dir := range []string{cfg.Storage.AudioRoot, cfg.Storage.UploadsDir, cfg.Storage.TempDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Logger.Fatal("Failed to create storage directory", zap.String("directory", dir), zap.Error(err))
		}
	}

	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	contentRepo := repositories.NewContentRepository(db, logger.Logger)
	tagRepo := repositories.NewTagRepository(db, logger.Logger)
	commentRepo := repositories.NewCommentRepository(db, logger.Logger)
	adminRepo := repositories.NewAdminRepository(db, logger.Logger)

	// Filesystem
	contentLocator := locator.NewLocator(cfg.Storage.AudioRoot, logger.Logger, locator.WithPadWidth(cfg.Storage.PadWidth))
	stager := storage.NewStager(cfg.Storage.TempDir, logger.Logger)
	organizer := storage.NewOrganizer(contentLocator, logger.Logger)
	fileServer := streaming.NewFileServer(logger.Logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)
	contentService := services.NewContentService(contentRepo, stager, organizer, contentLocator, logger.Logger)
	tagService := services.NewTagService(tagRepo, logger.Logger)
	commentService := services.NewCommentService(commentRepo, contentRepo, userRepo, logger.Logger)
	adminService := services.NewAdminService(adminRepo, startedAt, cfg.Storage.AudioRoot, cfg.Server.Env, logger.Logger)

	// Initialize handlers
	systemHandler := handlers.NewSystemHandler(adminService, nil, logger.Logger)
	tables := []handlers.RouteTable{
		systemHandler,
		handlers.NewAuthHandler(authService, logger.Logger),
		handlers.NewContentHandler(contentService, logger.Logger),
		handlers.NewTagHandler(tagService, logger.Logger),
		handlers.NewCommentHandler(commentService, logger.Logger),
		handlers.NewAdminHandler(adminService, contentService, logger.Logger),
		handlers.NewAudioHandler(contentLocator, fileServer, logger.Logger),
	}
	systemHandler.SetEndpoints(handlers.Endpoints(tables...))

	gate := handlers.Gate{
		Auth:  middleware.AuthMiddleware(tokenGenerator),
		Admin: middleware.RoleMiddleware(models.RoleAdmin),
	}

	// Setup router
	r := chi.NewRouter()

	// Apply middleware; body size limits are applied per route by handlers.Mount
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.SecurityHeadersMiddleware)
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(metrics.Middleware)
	r.Use(httprate.LimitByIP(cfg.Server.RateLimitPerMinute, time.Minute))

	r.Handle("/metrics", metrics.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	for _, table := range tables {
		if err := handlers.Mount(r, table, gate); err != nil {
			logger.Logger.Fatal("Invalid routing table", zap.Error(err))
		}
	}
	r.NotFound(systemHandler.NotFound)

	// Start server; streaming responses may run long, so no write timeout
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	useTLS := fileReadable(cfg.Server.TLSCertFile) && fileReadable(cfg.Server.TLSKeyFile)

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("tls", useTLS),
			zap.String("audioRoot", cfg.Storage.AudioRoot),
		)

		var err error
		if useTLS {
			err = srv.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			logger.Logger.Warn("TLS certificate not found, serving plain HTTP",
				zap.String("cert", cfg.Server.TLSCertFile),
				zap.String("key", cfg.Server.TLSKeyFile),
			)
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(migrationPath, "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func fileReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
