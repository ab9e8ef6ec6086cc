package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dhruv2311-dot/odoo-gcet/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func idempotencyRouter(rdb *redis.Client, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payroll", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Next()
	}, middleware.Idempotency(rdb), handler)
	return r
}

func TestIdempotency_NoKeyPassesThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	called := false
	r := idempotencyRouter(rdb, func(c *gin.Context) {
		called = true
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll", nil)
	r.ServeHTTP(w, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_FirstAttemptTakesLock(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cacheKey := "idemp:/payroll:user-1:key-1"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)

	var gotCacheKey, gotLockKey string
	r := idempotencyRouter(rdb, func(c *gin.Context) {
		gotCacheKey = c.GetString("idempotency_cache_key")
		gotLockKey = c.GetString("idempotency_lock_key")
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, cacheKey, gotCacheKey)
	assert.Equal(t, cacheKey+":lock", gotLockKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cached, _ := json.Marshal(map[string]any{"message": "Payroll created successfully"})
	mock.ExpectGet("idemp:/payroll:user-1:key-1").SetVal(string(cached))

	called := false
	r := idempotencyRouter(rdb, func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_ConcurrentDuplicateGets409(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	cacheKey := "idemp:/payroll:user-1:key-1"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	called := false
	r := idempotencyRouter(rdb, func(c *gin.Context) {
		called = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payroll", nil)
	req.Header.Set("Idempotency-Key", "key-1")
	r.ServeHTTP(w, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "PROCESSING", body["code"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
