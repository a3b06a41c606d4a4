package middleware

import (
	"errors"
	"net/http"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/session"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/apperror"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/contextutil"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const identityKey = "identity"

// SessionReader resolves the caller of an HTTP request.
type SessionReader interface {
	FromRequest(r *http.Request) (*session.Identity, error)
}

// Session resolves the session of every request. A missing or invalid session
// is not an error here; RequireSession decides what is protected.
func Session(reader SessionReader, logger *zap.Logger) gin.HandlerFunc {
	log := logger.Named("middleware.session")
	return func(c *gin.Context) {
		id, err := reader.FromRequest(c.Request)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				log.Debug("session rejected", zap.String("path", c.FullPath()), zap.Error(err))
			}
			c.Next()
			return
		}

		c.Set(identityKey, id)
		ctx := session.WithIdentity(c.Request.Context(), id)
		ctx = contextutil.WithUserID(ctx, id.Subject())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireSession aborts with 401 when no identity was resolved.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == nil {
			response.Abort(c, http.StatusUnauthorized, apperror.ErrUnauthorized.Code, apperror.ErrUnauthorized.Message)
			return
		}
		c.Next()
	}
}

// CurrentIdentity returns the caller resolved by Session, or nil.
func CurrentIdentity(c *gin.Context) *session.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*session.Identity)
	return id
}

// SetIdentity is used by tests and internal callers that already hold an identity.
func SetIdentity(c *gin.Context, id *session.Identity) {
	c.Set(identityKey, id)
}
