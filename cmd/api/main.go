package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/Dan9191/finance-dashboard/internal/handler"
	"github.com/Dan9191/finance-dashboard/internal/integrations/banguat"
	"github.com/Dan9191/finance-dashboard/internal/middleware"
	"github.com/Dan9191/finance-dashboard/internal/notify"
	"github.com/Dan9191/finance-dashboard/internal/repository"
	"github.com/Dan9191/finance-dashboard/internal/service"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	banguatClient := banguat.NewClient(cfg.BanguatURL, logger)
	svc := service.NewService(repo, logger, cfg, banguatClient, notifiers(cfg, logger))
	h := handler.NewHandler(svc, logger, cfg.CashFlowDefaultDays)

	// Debounce state lives in redis when configured so every replica shares it
	var debounce middleware.DebounceStore = middleware.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatalf("Failed to ping redis: %v", err)
		}
		debounce = middleware.NewRedisStore(rdb, "finance:")
	}

	r := handler.NewRouter(h, handler.RouterConfig{
		JWTSecret:   cfg.JWTSecret,
		Debounce:    debounce,
		DebounceTTL: cfg.AlertDebounce,
	})

	// Scheduled jobs
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.CronSchedule, func() {
		logger.Info("Running daily jobs")
		svc.RunDailyJobs(ctx)
	}); err != nil {
		logger.Fatalf("Failed to schedule daily jobs: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

func notifiers(cfg *config.Config, logger *logrus.Logger) notify.Multi {
	var n notify.Multi
	if cfg.EmailEnabled() {
		n = append(n, notify.NewEmailSender(cfg, logger))
	}
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegramSender(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Errorf("Telegram notifications disabled: %v", err)
		} else {
			n = append(n, tg)
		}
	}
	return n
}
