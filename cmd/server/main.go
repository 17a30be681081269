package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "forum_thread/internal/domain/discussion"
	_ "forum_thread/internal/domain/user"
	"forum_thread/internal/pkg/config"
	"forum_thread/internal/pkg/middleware"
	"forum_thread/internal/pkg/registry"
	"forum_thread/pkg/cache"
	"forum_thread/pkg/database"
	"forum_thread/pkg/logger"
	"forum_thread/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "forum:"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}
	config.LoadConfig()
	cfg := config.GlobalConfig

	zl, err := logger.Init(cfg.App.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.InitDatabase(cfg.Database, cfg.App.Debug, zl)
	if err != nil {
		zl.Fatal("connect database failed", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Cache.Driver != config.CacheDriverMemory {
		rdb, err = database.InitRedis(cfg.Redis, zl)
		if err != nil {
			zl.Fatal("connect redis failed", zap.Error(err))
		}
	}
	pageCache, err := newCache(cfg.Cache, rdb)
	if err != nil {
		zl.Fatal("init cache failed", zap.Error(err))
	}

	gin.SetMode(cfg.Server.Mode)
	addr := ":" + cfg.Server.Port
	r, err := graceful.New(gin.New(), graceful.WithAddr(addr))
	if err != nil {
		zl.Fatal("init server failed", zap.Error(err))
	}

	r.Use(
		gin.Recovery(),
		middleware.TraceMiddleware(),
		middleware.LoggerMiddleware(),
		middleware.MetricsMiddleware(),
		cors.New(cors.Config{
			AllowOrigins:     []string{"*"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.TraceHeader},
			ExposeHeaders:    []string{middleware.TraceHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}),
		middleware.SessionMiddleware(),
	)

	if err := registry.InitModules(&registry.ModuleContext{
		DB:     db,
		Redis:  rdb,
		Cache:  pageCache,
		Router: r.Engine,
		Config: &cfg,
		Logger: zl,
	}); err != nil {
		zl.Fatal("init modules failed", zap.Error(err))
	}

	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zl.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.App.Env))
	if err := r.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Error("server error", zap.Error(err))
	}
	zl.Info("shutting down server")

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	zl.Info("server exited")
}

// newCache 按 cache.driver 选择缓存实现
func newCache(cfg config.CacheConfig, rdb *redis.Client) (cache.CacheService, error) {
	switch cfg.Driver {
	case config.CacheDriverRedis:
		return cache.NewRedisCache(rdb, cacheKeyPrefix), nil
	case config.CacheDriverMultiLevel:
		local, err := cache.NewMemoryCache(cfg.MemorySize)
		if err != nil {
			return nil, err
		}
		return cache.NewMultiLevelCache(local, cache.NewRedisCache(rdb, cacheKeyPrefix), cfg.LocalTTL), nil
	default:
		mem, err := cache.NewMemoryCache(cfg.MemorySize)
		if err != nil {
			return nil, err
		}
		return mem, nil
	}
}
