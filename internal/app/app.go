package app

import (
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/config"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/middleware"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/session"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/connection"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/database"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ipRateLimit = 20 // requests per second
	ipRateBurst = 40
)

// BuildApp connects the stores, applies migrations and returns the router
// with every module mounted. cleanup closes the connections.
func BuildApp(cfg *config.Config, logger *zap.Logger) (*gin.Engine, func(), error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, err
	}
	log.Info("database connection established")

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = connection.ConnectRedisWithRetry(cfg.Redis, logger)
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, err
		}
		log.Info("redis connection established")
	} else {
		log.Warn("redis disabled, idempotency keys are ignored")
	}

	cleanup := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
		_ = sqlDB.Close()
	}

	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.TTL)
	router := NewRouter(cfg, sessions, logger)
	router.GET("/healthz", healthHandler(sqlDB, rdb))

	if err := registerModules(router, gormDB, rdb, logger); err != nil {
		cleanup()
		return nil, nil, err
	}

	return router, cleanup, nil
}

// NewRouter builds the engine and the middleware shared by every route.
func NewRouter(cfg *config.Config, sessions middleware.SessionReader, logger *zap.Logger) *gin.Engine {
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Session(sessions, logger),
		middleware.ContextLogger(logger),
		gzip.Gzip(gzip.DefaultCompression),
		middleware.RateLimitByIP(ipRateLimit, ipRateBurst),
	)
	return r
}
