package main // Entry point package

import (
	"log"      // fatal startup errors
	"log/slog" // structured application logging
	"os"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/database"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/notify"
	"github.com/iliyamo/user-auth-service/internal/queue"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/router"
)

func main() {
	_ = godotenv.Load() // optional .env; real env vars win

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	gateway := notify.NewGateway(
		notify.NewEmailSender(cfg.Email, logger),
		notify.NewSMSSender(cfg.AMQPURL, logger),
	)

	// Background consumer that plays the SMS provider role: it drains
	// sms.outbound and logs each dispatch. Runs its own reconnect loop.
	go func() {
		if err := queue.StartSMSConsumer(cfg.AMQPURL); err != nil {
			logger.Error("sms consumer stopped", slog.String("error", err.Error()))
		}
	}()

	e := echo.New()
	e.HideBanner = true

	// Transport-level rate limiting; degrades to a no-op when Redis is not
	// reachable.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	auth := handler.NewAuthHandler(cfg, users, tokens, gateway, logger)
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, cfg.JWTSecret, tokens)

	addr := ":" + cfg.Port
	logger.Info("listening", slog.String("addr", addr), slog.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
