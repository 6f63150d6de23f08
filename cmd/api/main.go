package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/creator-marketplace/backend/internal/config"
	"github.com/creator-marketplace/backend/internal/db"
	"github.com/creator-marketplace/backend/internal/events"
	apphttp "github.com/creator-marketplace/backend/internal/http"
	"github.com/creator-marketplace/backend/internal/http/dto"
	"github.com/creator-marketplace/backend/internal/http/handlers"
	"github.com/creator-marketplace/backend/internal/logger"
	"github.com/creator-marketplace/backend/internal/middleware"
	"github.com/creator-marketplace/backend/internal/repositories"
	"github.com/creator-marketplace/backend/internal/services"
	"github.com/creator-marketplace/backend/migrations"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, db.PoolOptions{MaxConns: cfg.PostgresMaxConns}, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	campaignRepo := repositories.NewCampaignRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	var draftStore services.DraftStore
	switch cfg.DraftStore {
	case config.DraftStoreSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath, log)
		if err != nil {
			log.Fatal("failed to open sqlite", zap.Error(err))
		}
		defer sqlDB.Close()
		repo := repositories.NewSQLiteDraftRepo(sqlDB)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal("failed to prepare sqlite schema", zap.Error(err))
		}
		draftStore = repo
	default:
		draftStore = repositories.NewDraftRepo(pool)
	}

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	draftService := services.NewDraftService(draftStore, campaignRepo, auditRepo, publisher, services.DraftServiceConfig{
		AutosaveDelay: cfg.AutosaveDelay(),
		DeadlineDays:  cfg.DefaultDeadlineDays,
		IdleTimeout:   cfg.SessionIdleTimeout(),
	}, log)
	campaignService := services.NewCampaignService(campaignRepo, auditRepo, log)

	// Handlers
	wsHub := handlers.NewWSHub(cfg, subscriber, log)
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to subscribe to draft events", zap.Error(err))
	}

	sessionsDone := make(chan struct{})
	go func() {
		draftService.Run(ctx)
		close(sessionsDone)
	}()

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: middleware.GetRequestID(c)})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, apphttp.Handlers{
		Draft:    handlers.NewDraftHandler(draftService, log),
		Campaign: handlers.NewCampaignHandler(campaignService, log),
		Meta:     handlers.NewMetaHandler(),
		WSHub:    wsHub,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
		cancel()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr), zap.String("draft_store", cfg.DraftStore))
	if err := app.Listen(addr); err != nil {
		log.Error("server error", zap.Error(err))
	}

	cancel()
	<-sessionsDone
	log.Info("draft sessions flushed")
}
