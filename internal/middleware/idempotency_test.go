package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func newIdempotencyRouter(t *testing.T, calls *int) (*gin.Engine, redismock.ClientMock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		SetIdentity(c, &session.Identity{UserID: 7, Role: session.RoleEmployee})
		c.Next()
	})
	r.POST("/leaves", Idempotency(rdb), func(c *gin.Context) {
		*calls++
		c.JSON(http.StatusCreated, gin.H{"ok": true, "data": gin.H{"id": 1}})
	})
	return r, mock
}

func TestIdempotency(t *testing.T) {
	body := `{"start_date":"2030-06-01","end_date":"2030-06-02","reason":"Repos"}`
	cacheKey := IdempotencyCacheKey("/leaves", "7", "key-1")
	lockKey := cacheKey + ":lock"

	t.Run("first request is served and stored", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(true)
		mock.Regexp().ExpectSet(cacheKey, `.*`, idempotencyCacheTTL).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay returns stored response", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		stored, _ := json.Marshal(idempotentResponse{
			RequestHash: requestHash([]byte(body)),
			Status:      http.StatusCreated,
			Body:        json.RawMessage(`{"ok":true,"data":{"id":1}}`),
		})
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replayed"))
		assert.JSONEq(t, `{"ok":true,"data":{"id":1}}`, w.Body.String())
		assert.Equal(t, 0, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative key reused with another body", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		stored, _ := json.Marshal(idempotentResponse{
			RequestHash: requestHash([]byte(`{"other":true}`)),
			Status:      http.StatusCreated,
			Body:        json.RawMessage(`{}`),
		})
		mock.ExpectGet(cacheKey).SetVal(string(stored))

		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, 0, calls)
	})

	t.Run("negative concurrent duplicate", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", idempotencyLockTTL).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body))
		req.Header.Set(IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.Equal(t, 0, calls)
	})

	t.Run("no header skips redis", func(t *testing.T) {
		calls := 0
		r, mock := newIdempotencyRouter(t, &calls)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/leaves", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
