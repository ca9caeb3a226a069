package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"northpole/wishhub/internal/config"
	"northpole/wishhub/internal/handler"
	"northpole/wishhub/internal/model"
	"northpole/wishhub/internal/repository"
	"northpole/wishhub/internal/service"
	jwtpkg "northpole/wishhub/pkg/jwt"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Initialize logger
	var logger *zap.Logger
	if cfg.Log.Format == "json" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// 3. Initialize keyed state store, sequencer and notifier per backend
	var (
		kv           repository.KVStore
		sequencer    service.Sequencer
		notifier     service.Notifier
		eventHandler *handler.EventHandler
	)
	switch cfg.State.Backend {
	case "redis":
		redisClient, err := config.NewRedisClient(cfg.Database.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		kv = repository.NewRedisKVStore(redisClient)
		sequencer = repository.NewRedisSequencer(redisClient)

		// Event log lives in postgres; the redis channel feeds live
		// subscribers while the table feeds the admin events endpoint.
		db, err := config.NewPostgresDB(cfg.Database.Postgres)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		if cfg.Database.Postgres.AutoMigrate {
			if err := model.AutoMigrate(db); err != nil {
				logger.Fatal("failed to auto-migrate", zap.Error(err))
			}
			logger.Info("database migration completed")
		}
		eventRepo := repository.NewPGEventLogRepository(db)
		notifier = service.NewMultiNotifier(
			service.NewRedisNotifier(redisClient, cfg.Events.Channel),
			service.NewEventLogNotifier(eventRepo),
		)
		eventHandler = handler.NewEventHandler(eventRepo)
		logger.Info("using Redis state store")
	case "memory":
		kv = repository.NewMemoryKVStore()
		sequencer = repository.NewMemorySequencer()
		notifier = service.NewZapNotifier(logger)
		logger.Info("using in-memory state store")
	default:
		logger.Fatal("unknown state backend", zap.String("backend", cfg.State.Backend))
	}

	// 4. Initialize repository and JWT manager
	wishlistRepo := repository.NewKVWishlistRepository(kv, cfg.Storage.Retention, cfg.Storage.RenewThreshold)
	jwtManager := jwtpkg.NewManager(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.AccessTokenTTL)

	// 5. Initialize the wishlist service
	wishlistService := service.NewWishlistService(
		wishlistRepo,
		handler.NewContextAuthorizer(),
		service.NewSystemClock(),
		sequencer,
		notifier,
		logger,
	)

	// 6. One-time bootstrap from configuration
	err = wishlistService.Bootstrap(
		context.Background(),
		cfg.Wishlist.Admin,
		cfg.Wishlist.Deadline,
		cfg.Wishlist.Denylist,
	)
	switch {
	case err == nil:
		logger.Info("wishlist bootstrapped",
			zap.String("admin", cfg.Wishlist.Admin),
			zap.Int64("deadline", cfg.Wishlist.Deadline))
	case errors.Is(err, service.ErrAlreadyBootstrapped):
		logger.Info("wishlist already bootstrapped, keeping stored settings")
	default:
		logger.Fatal("failed to bootstrap wishlist", zap.Error(err))
	}

	// 7. Setup router
	wishlistHandler := handler.NewWishlistHandler(wishlistService)
	router := handler.SetupRouter(cfg, logger, jwtManager, wishlistHandler, eventHandler)

	// 8. Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 9. Start server with graceful shutdown
	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited gracefully")
}
