package leave

import (
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/middleware"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	userRateLimit = 5 // requests per second
	userRateBurst = 20
)

// RegisterRoutes mounts the leave endpoints. rdb may be nil, in which case
// POST /leaves runs without Idempotency-Key replay.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	leaves := r.Group("/leaves")
	leaves.Use(middleware.RequireSession(), middleware.RateLimitByUser(userRateLimit, userRateBurst))
	{
		create := []gin.HandlerFunc{middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionCreate)}
		if rdb != nil {
			create = append(create, middleware.Idempotency(rdb))
		}
		leaves.POST("", append(create, handler.Create)...)

		leaves.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.List)
		leaves.GET("/export.xlsx", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionExport), handler.ExportXLSX)
		leaves.GET("/calendar.ics", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), handler.CalendarICS)
		leaves.PUT("/:id/decision", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionDecide), handler.Decide)
	}
}
