package main

import (
	"context"
	"net/http"

	_ "chirp/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"chirp/internal/auth"
	"chirp/internal/cache"
	"chirp/internal/config"
	"chirp/internal/db"
	"chirp/internal/handler"
	"chirp/internal/repository"
	"chirp/internal/router"
	"chirp/internal/service"
)

// @title Chirp API
// @version 1.0
// @description Minimal social network backend: registration, cookie-based JWT sessions, follow/unfollow and tweet bookmarks.
// @host localhost:8080
// @BasePath /api/v1/user
// @schemes http
func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	e := echo.New()
	e.Use(middleware.RequestID())

	mongoDB, err := db.NewMongo(context.Background(), cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(mongoDB)
	if err := userRepo.EnsureIndexes(context.Background()); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.CookieSecure, log)
	userHandler := handler.NewUserHandler(userService, log)

	// Register routes
	router.Register(e, cfg, authHandler, userHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Infof("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
