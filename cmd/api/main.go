package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/veve-booking/internal/audit"
	"github.com/BruksfildServices01/veve-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/veve-booking/internal/db"
	"github.com/BruksfildServices01/veve-booking/internal/infra/cache"
	"github.com/BruksfildServices01/veve-booking/internal/infra/storage"
	"github.com/BruksfildServices01/veve-booking/internal/notify"
	"github.com/BruksfildServices01/veve-booking/internal/realtime"
	"github.com/BruksfildServices01/veve-booking/internal/routes"
	ucBooking "github.com/BruksfildServices01/veve-booking/internal/usecase/booking"
	"github.com/BruksfildServices01/veve-booking/internal/validators"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	if err := validators.Register(); err != nil {
		log.Fatalf("failed to register validators: %v", err)
	}

	db := dbpkg.NewDB(cfg)

	if cfg.CatalogSeedPath != "" {
		seed, err := dbpkg.LoadCatalogSeed(cfg.CatalogSeedPath)
		if err != nil {
			log.Fatalf("failed to load catalog seed: %v", err)
		}
		if err := dbpkg.SeedCatalog(db, seed); err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
	}

	// --------------------------------------------------
	// Redis (opcional)
	// --------------------------------------------------
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = cache.NewRedisClient(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := cache.Ping(ctx, redisClient); err != nil {
			log.Printf("redis unavailable, falling back to memory stores: %v", err)
			redisClient.Close()
			redisClient = nil
		}
	}

	// --------------------------------------------------
	// Realtime
	// --------------------------------------------------
	hub := realtime.NewHub(32)
	var events realtime.Publisher = hub
	if redisClient != nil {
		bridge := realtime.NewRedisBridge(hub, redisClient, config.NewCircuitBreaker("redis-realtime"))
		go bridge.Run(ctx)
		events = bridge
	}

	// --------------------------------------------------
	// Async sinks
	// --------------------------------------------------
	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	var notifier ucBooking.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		sender, err := notify.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID, config.NewCircuitBreaker("telegram"))
		if err != nil {
			log.Printf("telegram disabled: %v", err)
		} else {
			d := notify.NewDispatcher(sender)
			defer d.Close()
			notifier = d
		}
	}

	var store storage.ObjectStore
	if cfg.S3.Enabled() {
		store = storage.NewS3Store(cfg.S3)
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	r := gin.Default()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Redis:    redisClient,
		Hub:      hub,
		Events:   events,
		Audit:    auditDispatcher,
		Notifier: notifier,
		Store:    store,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}
}
