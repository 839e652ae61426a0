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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/slot-scheduler/internal/audit"
	"github.com/BruksfildServices01/slot-scheduler/internal/cache"
	"github.com/BruksfildServices01/slot-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/slot-scheduler/internal/db"
	"github.com/BruksfildServices01/slot-scheduler/internal/logger"
	"github.com/BruksfildServices01/slot-scheduler/internal/notification"
	"github.com/BruksfildServices01/slot-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	db := dbpkg.NewDB(cfg, zlog)

	// --------------------------------------------------
	// Slot cache (optional)
	// --------------------------------------------------
	var slotCache cache.SlotCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		client, err := cache.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			zlog.Warn("redis unavailable, slot cache disabled",
				zap.String("addr", cfg.RedisAddr),
				zap.Error(err),
			)
		} else {
			defer func() { _ = client.Close() }()
			slotCache = cache.NewRedisSlotCache(client, cfg.SlotCacheTTL, zlog)
		}
	}

	// --------------------------------------------------
	// Background dispatchers
	// --------------------------------------------------
	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, zlog, cfg.AuditQueueSize)
	notifier := notification.NewDispatcher(db, zlog, cfg.AuditQueueSize)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Deps{
		DB:          db,
		Config:      cfg,
		Log:         zlog,
		Cache:       slotCache,
		AuditLogger: auditLogger,
		Audit:       auditDispatcher,
		Notify:      notifier,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}

	auditDispatcher.Close()
	notifier.Close()
}
