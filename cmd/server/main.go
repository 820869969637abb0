package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"alumnidir/docs" // swagger docs
	"alumnidir/internal/auth"
	"alumnidir/internal/cache"
	"alumnidir/internal/config"
	"alumnidir/internal/db"
	"alumnidir/internal/handler"
	"alumnidir/internal/logger"
	"alumnidir/internal/mail"
	"alumnidir/internal/repository"
	"alumnidir/internal/router"
	"alumnidir/internal/service"
	"alumnidir/internal/session"
)

// @title Alumni Directory API
// @version 1.0
// @description Alumni directory with invite-gated signup, admin moderation and bulk invite email.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormLevel := gormlogger.Warn
	if !cfg.IsProduction() && cfg.LogLevel == "debug" {
		gormLevel = gormlogger.Info
	}
	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, logger.NewGormLogger(log, gormLevel))
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	// Drop tables if RESET_DB environment variable is set
	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Warn("drop tables", zap.Error(err))
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("migrate", zap.Error(err))
	}

	rdb := connectRedis(ctx, cfg, log)
	if rdb != nil {
		defer rdb.Close()
	}

	// Initialize repositories
	store := repository.NewStore(gormDB)

	// Initialize auth components
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionTTL)

	// Initialize services
	courseService := service.NewCourseService(store.Courses, store, cache.New(rdb, "alumni:"))
	if seeded, err := courseService.EnsureDefaults(ctx); err != nil {
		log.Warn("seed default courses", zap.Error(err))
	} else if seeded {
		log.Info("installed default course list")
	}
	profileService := service.NewProfileService(store.Profiles, courseService, hasher)
	inviteService := service.NewInviteService(store.Invites, store, hasher)
	authService := service.NewAuthService(store.Profiles, store.Admins, hasher)
	adminService := service.NewAdminService(store.Admins)
	emailService := service.NewEmailService(inviteService, newSender(cfg, log), cfg.InviteBaseURL, cfg.Mail.Concurrency, log)

	var storage session.Storage = session.NewMemoryStorage()
	if rdb != nil {
		storage = session.NewRedisStorage(rdb, "alumni:", cfg.SessionTTL)
	}
	sessions := session.NewManager(storage, courseService, profileService, log)

	// Initialize handlers
	routes := handler.Collect(
		handler.NewCourseHandler(courseService, sessions),
		handler.NewProfileHandler(profileService, inviteService, sessions, log),
		handler.NewAdminHandler(adminService, authService),
		handler.NewInviteHandler(inviteService, cfg.InviteBaseURL),
		handler.NewAuthHandler(authService, sessions, jwtService),
		handler.NewEmailHandler(emailService),
		handler.NewSessionHandler(sessions),
		handler.NewSearchHandler(sessions),
	)
	validator := router.NewCustomValidator()
	dispatcher := router.NewDispatcher(validator.Engine(), log, routes...)

	e := echo.New()
	e.HideBanner = true

	// Register routes
	router.Register(e, cfg, dispatcher, sessions, jwtService, log)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
	}
	log.Info("swagger documentation available", zap.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("server starting", zap.String("addr", addr), zap.String("db_driver", cfg.DBDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
}

// connectRedis returns nil when Redis is not configured or unreachable, in
// which case sessions live in process memory and the course list is uncached.
func connectRedis(ctx context.Context, cfg *config.Config, log *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, using in-memory sessions", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		_ = rdb.Close()
		return nil
	}
	return rdb
}

func newSender(cfg *config.Config, log *zap.Logger) mail.Sender {
	if cfg.Mail.SMTPHost == "" {
		log.Info("SMTP_HOST not set, invite emails are simulated", zap.Float64("failure_rate", cfg.Mail.FailureRate))
		return mail.NewSimulatedSender(log, cfg.Mail.FailureRate)
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.Mail.SMTPHost,
		Port:     cfg.Mail.SMTPPort,
		Username: cfg.Mail.SMTPUsername,
		Password: cfg.Mail.SMTPPassword,
		From:     cfg.Mail.From,
	})
}
