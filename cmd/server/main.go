package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/haneul-dev/virtual-gallery/internal/config"
	"github.com/haneul-dev/virtual-gallery/internal/database"
	"github.com/haneul-dev/virtual-gallery/internal/handler"
	"github.com/haneul-dev/virtual-gallery/internal/middleware"
	"github.com/haneul-dev/virtual-gallery/internal/queue"
	"github.com/haneul-dev/virtual-gallery/internal/repository"
	"github.com/haneul-dev/virtual-gallery/internal/router"
	queue_publisher "github.com/haneul-dev/virtual-gallery/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()
	if cfg.Env == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer db.Close()

	galleryRepo := repository.NewGalleryRepo(db)
	hallRepo := repository.NewHallRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	galleryHandler := handler.NewGalleryHandler(galleryRepo, hallRepo, userRepo, queue_publisher.New())

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.Register(e, authHandler, galleryHandler, cfg.JWTSecret, cache)

	go queue.StartGalleryConsumer()

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
