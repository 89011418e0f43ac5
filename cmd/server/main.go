package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/climawatch/weather-api/internal/api"
	"github.com/climawatch/weather-api/internal/core/service"
	"github.com/climawatch/weather-api/internal/infrastructure/config"
	mongodb "github.com/climawatch/weather-api/internal/infrastructure/db/mongo"
	redisdb "github.com/climawatch/weather-api/internal/infrastructure/db/redis"
	"github.com/climawatch/weather-api/internal/scheduler"
	"github.com/climawatch/weather-api/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	userRepo := mongodb.NewUserRepository(db)
	readingRepo := mongodb.NewReadingRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := readingRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("reading index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		_ = rdb.Close()
	}()

	// --- Services ---
	denylist := redisdb.NewDenylist(rdb)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokens, denylist, log)
	userService := service.NewUserService(userRepo, log)
	readingService := service.NewReadingService(readingRepo, log)

	// --- Background jobs ---
	purger := scheduler.New(userRepo, cfg.PurgeInterval, cfg.StudentRetention, log)
	if err := purger.Start(); err != nil {
		log.Fatal().Err(err).Msg("scheduler start failed")
	}
	defer purger.Stop()

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Logger:           log,
		Development:      cfg.IsDevelopment(),
		CookieTTL:        cfg.CookieTTL,
		CORSOrigins:      cfg.CORSOrigins,
		OpenRegistration: cfg.OpenRegistration,
		OpenSensorIngest: cfg.OpenSensorIngest,
		Auth:             authService,
		Users:            userService,
		Readings:         readingService,
		Tokens:           tokens,
		Resolver:         userRepo,
		Denylist:         denylist,
		Mongo:            db,
		Redis:            rdb,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
