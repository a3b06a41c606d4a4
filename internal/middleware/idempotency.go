package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/contextutil"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader   = "Idempotency-Key"
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

type idempotentResponse struct {
	RequestHash string          `json:"request_hash"`
	Status      int             `json:"status"`
	Body        json.RawMessage `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func requestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

func IdempotencyCacheKey(path, subject, key string) string {
	return fmt.Sprintf("idemp:%s:%s:%s", path, subject, key)
}

// Idempotency replays the stored 2xx response of a POST carrying an
// Idempotency-Key already seen for the same caller and route. A concurrent
// duplicate gets 409 PROCESSING; reusing a key with another body gets 422.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader(IdempotencyHeader)
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := contextutil.GetLogger(ctx, zap.L()).Named("middleware.idempotency")

		payload, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Abort(c, http.StatusBadRequest, "INVALID_INPUT", "Corps de requête illisible")
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(payload))
		hash := requestHash(payload)

		subject := ""
		if id := CurrentIdentity(c); id != nil {
			subject = id.Subject()
		}
		cacheKey := IdempotencyCacheKey(c.FullPath(), subject, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			var stored idempotentResponse
			if jsonErr := json.Unmarshal([]byte(val), &stored); jsonErr == nil {
				if stored.RequestHash != hash {
					response.Abort(c, http.StatusUnprocessableEntity, "IDEMPOTENCY_KEY_REUSED",
						"Cette clé d'idempotence a déjà été utilisée pour une autre requête")
					return
				}
				c.Header("Idempotent-Replayed", "true")
				c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
				c.Abort()
				return
			}
			log.Warn("idempotency cache entry unreadable", zap.String("key", cacheKey))
		case !errors.Is(err, redis.Nil):
			// redis unavailable: serve the request without replay protection
			log.Warn("idempotency cache lookup failed", zap.Error(err))
			c.Next()
			return
		}

		isNew, err := rdb.SetNX(ctx, lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !isNew {
			response.Abort(c, http.StatusConflict, "PROCESSING", "Votre demande est en cours de traitement, veuillez patienter")
			return
		}
		defer rdb.Del(ctx, lockKey)

		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		status := rec.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			return
		}

		entry, err := json.Marshal(idempotentResponse{
			RequestHash: hash,
			Status:      status,
			Body:        rec.buf.Bytes(),
		})
		if err != nil {
			return
		}
		if err := rdb.Set(ctx, cacheKey, entry, idempotencyCacheTTL).Err(); err != nil {
			log.Warn("idempotency cache store failed", zap.Error(err))
		}
	}
}
