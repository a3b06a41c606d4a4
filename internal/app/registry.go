package app

import (
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/employee"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/messaging/kafka"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/middleware"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	leaveService := leave.NewService(gormDB, leaveRepo, employeeRepo, outboxRepo, logger)

	// --- Handlers ---
	leaveHandler := leave.NewHandler(leaveService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler,
			middleware.RequireSession(),
			middleware.RBACAuthorize(rbacService, rbac.ResourceRole, rbac.ActionRead),
		)
	}

	return nil
}
