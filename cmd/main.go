package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/config"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/db"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/domain"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/handler"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/notifier"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/ratelimit"
	repo "github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/repository/postgres"
	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/service"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer dbPool.Close()

	repository := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	lockoutService := service.NewLockoutService(repository, repository, notifier.NewLogNotifier())
	userService := service.NewUserService(repository, tokenService, lockoutService)

	// Key lockouts escalate into the audit trail so distributed patterns
	// stay visible even when the account behind the key is unknown.
	onLockout := func(key string, attempts int, until time.Time) {
		entry := &domain.AuditEntry{
			Event: domain.EventMultipleFailedAttempts,
			Details: map[string]any{
				"key":          key,
				"attempts":     attempts,
				"locked_until": until,
			},
			Successful: false,
		}
		if err := repository.InsertAuditEntry(context.Background(), entry); err != nil {
			slog.Warn("failed to audit rate-limit lockout", "key", key, "error", err)
		}
	}

	var limiter ratelimit.Checker
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		limiter = ratelimit.NewRedisLimiter(redis.NewClient(opts), onLockout)
	} else {
		memLimiter := ratelimit.NewLimiter(onLockout)
		memLimiter.Start()
		defer memLimiter.Stop()
		limiter = memLimiter
	}

	loginPolicy := ratelimit.Policy{
		Window:      time.Duration(cfg.LoginRateLimitWindowMin) * time.Minute,
		MaxAttempts: cfg.LoginRateLimitMax,
	}

	sweeper := service.NewRetentionSweeper(repository,
		time.Duration(cfg.AuditRetentionDays)*24*time.Hour)
	sweeper.Start()
	defer sweeper.Stop()

	authHandler := handler.NewAuthHandler(userService, lockoutService, tokenService, limiter, loginPolicy)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
