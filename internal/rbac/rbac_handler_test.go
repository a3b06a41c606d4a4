package rbac

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct {
	roles []RoleResponse
	err   error
}

func (m *mockService) Enforce(req EnforceRequest) (bool, error) {
	return false, nil
}

func (m *mockService) ListRoles() ([]RoleResponse, error) {
	return m.roles, m.err
}

func TestHandler_ListRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		h := NewHandler(&mockService{roles: []RoleResponse{{Name: "RH", Permissions: []string{"leave:decide"}}}})
		router := gin.New()
		RegisterRoutes(router.Group(""), h)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roles", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var env struct {
			Ok   bool           `json:"ok"`
			Data []RoleResponse `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.True(t, env.Ok)
		assert.Equal(t, "RH", env.Data[0].Name)
	})

	t.Run("guard aborts", func(t *testing.T) {
		h := NewHandler(&mockService{})
		router := gin.New()
		RegisterRoutes(router.Group(""), h, func(c *gin.Context) {
			c.AbortWithStatus(http.StatusForbidden)
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roles", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("negative service error", func(t *testing.T) {
		h := NewHandler(&mockService{err: errors.New("boom")})
		router := gin.New()
		RegisterRoutes(router.Group(""), h)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/roles", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
