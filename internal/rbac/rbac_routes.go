package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the role listing. guard is the session + permission
// chain built by the caller, kept out of this package to avoid an import cycle
// with the middleware package.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard ...gin.HandlerFunc) {
	roles := r.Group("/roles")
	roles.Use(guard...)
	{
		roles.GET("", handler.ListRoles)
	}
}
