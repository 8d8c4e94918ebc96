package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"partnersync/config"
	"partnersync/database"
	"partnersync/exchange"
	"partnersync/handlers"
	"partnersync/logger"
	"partnersync/reports"
	"partnersync/stats"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logg, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logg.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Create context with timeout for initial connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.DatabaseURL, logg)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer cache.Close()

		if err := cache.Ping(ctx).Err(); err != nil {
			logg.Warn("Redis unreachable, exchange rates will not be cached", zap.Error(err))
		}
	}

	rates := exchange.NewClient(cfg.ExchangeRate.URL, cache, cfg.ExchangeRate.CacheTTL, logg)
	statsSvc := stats.NewService(db, logg)
	reportSvc := reports.NewService(db, rates, logg)

	router := handlers.NewRouter(db, statsSvc, reportSvc, cfg.JWTSecret, logg)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		logg.Info("Server starting", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("HTTP server shutdown error", zap.Error(err))
	}
}
