package main

import (
	"log"
	"net/http"
	"os"

	_ "jobtrack/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"jobtrack/internal/auth"
	"jobtrack/internal/cache"
	"jobtrack/internal/config"
	"jobtrack/internal/db"
	"jobtrack/internal/handler"
	"jobtrack/internal/model"
	"jobtrack/internal/repository"
	"jobtrack/internal/router"
	"jobtrack/internal/service"
)

// @title Job Application Tracker API
// @version 1.0
// @description Personal job-application tracker with JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	// A server that cannot sign tokens must not start.
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	e := echo.New()
	e.Use(middleware.RequestID())
	e.Debug = !cfg.IsProduction()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Application{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Application{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	applicationRepo := repository.NewApplicationRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, cfg.BcryptCost)
	applicationService := service.NewApplicationService(applicationRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	seedHandler := handler.NewSeedHandler(applicationService)

	// Register routes
	router.Register(
		e,
		cfg,
		jwtService,
		authHandler,
		applicationHandler,
		seedHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
