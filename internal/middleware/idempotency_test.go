package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/STS-Engineer/rh-app-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

type handlerSpy struct {
	called   bool
	cacheKey string
	lockKey  string
}

func setupIdempotencyTest(rdb *redis.Client, spy *handlerSpy) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
	})
	r.POST("/visa-dossiers", middleware.Idempotency(rdb), func(c *gin.Context) {
		spy.called = true
		spy.cacheKey = c.GetString("idempotency_cache_key")
		spy.lockKey = c.GetString("idempotency_lock_key")
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r
}

func TestIdempotency(t *testing.T) {
	const cacheKey = "idemp:/visa-dossiers:user-1:key-1"
	const lockKey = cacheKey + ":lock"

	t.Run("passes through without a key", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		spy := &handlerSpy{}
		r := setupIdempotencyTest(rdb, spy)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/visa-dossiers", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, spy.called)
		assert.Empty(t, spy.cacheKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replays the cached response", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).SetVal(`{"dossier_id":"abc"}`)

		spy := &handlerSpy{}
		r := setupIdempotencyTest(rdb, spy)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/visa-dossiers", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, spy.called)
		assert.Contains(t, w.Body.String(), `"abc"`)
		assert.Contains(t, w.Body.String(), `"ok":true`)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects an in-flight duplicate", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(false)

		spy := &handlerSpy{}
		r := setupIdempotencyTest(rdb, spy)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/visa-dossiers", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.False(t, spy.called)
		assert.Contains(t, w.Body.String(), "PROCESSING")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fresh key locks and exposes the cache keys", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(lockKey, "locked", 30*time.Second).SetVal(true)

		spy := &handlerSpy{}
		r := setupIdempotencyTest(rdb, spy)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/visa-dossiers", nil)
		req.Header.Set("Idempotency-Key", "key-1")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, spy.called)
		assert.Equal(t, cacheKey, spy.cacheKey)
		assert.Equal(t, lockKey, spy.lockKey)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
