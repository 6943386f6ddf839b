package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmstaff/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func performIdempotentPost(t *testing.T, handler gin.HandlerFunc, mockSetup func(mock redismock.ClientMock), key string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()
	mockSetup(mock)

	r := gin.New()
	r.POST("/api/v1/leaves", func(c *gin.Context) {
		c.Set("staff_id", "staff-1")
	}, middleware.Idempotency(rdb), handler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NoError(t, mock.ExpectationsWereMet())
	return w
}

func TestIdempotency(t *testing.T) {
	passThrough := func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"success": true})
	}

	t.Run("no key passes through untouched", func(t *testing.T) {
		w := performIdempotentPost(t, passThrough, func(mock redismock.ClientMock) {}, "")

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("first request takes the lock and proceeds", func(t *testing.T) {
		cacheKey := "idemp:/api/v1/leaves:staff-1:key-1"
		w := performIdempotentPost(t, passThrough, func(mock redismock.ClientMock) {
			mock.ExpectGet(cacheKey).RedisNil()
			mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		}, "key-1")

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("cached response is replayed", func(t *testing.T) {
		cacheKey := "idemp:/api/v1/leaves:staff-1:key-1"
		w := performIdempotentPost(t, func(c *gin.Context) {
			t.Fatal("handler must not run when the response is cached")
		}, func(mock redismock.ClientMock) {
			mock.ExpectGet(cacheKey).SetVal(`{"id":"abc"}`)
		}, "key-1")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"abc"`)
	})

	t.Run("in-flight key is rejected", func(t *testing.T) {
		cacheKey := "idemp:/api/v1/leaves:staff-1:key-1"
		w := performIdempotentPost(t, func(c *gin.Context) {
			t.Fatal("handler must not run while the first request holds the lock")
		}, func(mock redismock.ClientMock) {
			mock.ExpectGet(cacheKey).RedisNil()
			mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)
		}, "key-1")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "PROCESSING")
	})
}
