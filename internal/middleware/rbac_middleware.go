package middleware

import (
	"net/http"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/rbac"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/apperror"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := CurrentIdentity(c)
		if id == nil {
			response.Abort(c, http.StatusUnauthorized, apperror.ErrUnauthorized.Code, apperror.ErrUnauthorized.Message)
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     id.Role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.Abort(c, http.StatusInternalServerError, apperror.ErrInternal.Code, apperror.ErrInternal.Message)
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.ErrForbidden.Code, apperror.ErrForbidden.Message, gin.H{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
