package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"account-service/internal/authn"
	authnhandler "account-service/internal/authn/handler"
	"account-service/internal/cache"
	"account-service/internal/config"
	"account-service/internal/db"
	"account-service/internal/notify"
	"account-service/internal/security"
	"account-service/internal/server"
	userhandler "account-service/internal/user/handler"
	"account-service/internal/user/repository"
	"account-service/internal/user/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	defer pool.Close()

	var store cache.Store
	if cfg.RedisAddr != "" {
		redisStore, err := cache.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Fatal("redis connect failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		defer func() { _ = redisStore.Close() }()
		store = redisStore
		logger.Info("using redis challenge store", zap.String("addr", cfg.RedisAddr))
	} else {
		store = cache.NewMemoryStore()
		logger.Warn("REDIS_ADDR not set, using in-process challenge store")
	}

	var notifier notify.Notifier
	if cfg.SMSAPIKey != "" {
		notifier = notify.NewSMSClient(cfg.SMSAPIKey, cfg.SMSBaseURL, cfg.SMSSender)
	} else {
		notifier = notify.NewLogNotifier(logger)
		logger.Warn("SMS_API_KEY not set, logging notifications instead of sending")
	}

	tokens, err := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.AccessTokenTTL())
	if err != nil {
		logger.Fatal("token provider init failed", zap.Error(err))
	}
	hasher := security.NewHasher(cfg.BcryptCost)

	users := repository.NewPostgresUserRepository(pool)
	roles := repository.NewPostgresRoleRepository(pool)

	challenges := authn.NewManager(users, store, notifier, cfg.AuthNumberTTL(), logger)
	login := authn.NewLoginService(users, roles, hasher, tokens)
	userSvc := service.NewService(challenges, hasher, users, roles, notifier, logger)

	router := server.NewRouter(server.Deps{
		Authn:  authnhandler.NewHandler(challenges, login, logger),
		Users:  userhandler.NewHandler(userSvc, logger),
		Tokens: tokens,
		Pinger: pool,
		Log:    logger,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down http server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
	logger.Info("http server stopped")
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
