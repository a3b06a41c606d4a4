package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/apperror"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

var _ pinger = (*sql.DB)(nil)

func healthHandler(db pinger, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := gin.H{"database": "ok"}
		healthy := true

		if err := db.PingContext(ctx); err != nil {
			checks["database"] = "down"
			healthy = false
		}
		if rdb != nil {
			checks["redis"] = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				checks["redis"] = "down"
				healthy = false
			}
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Service indisponible", checks)
			return
		}
		response.Success(c, http.StatusOK, checks, nil)
	}
}
