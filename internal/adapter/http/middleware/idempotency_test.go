package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	redisStore "bitpesa-lending/internal/adapter/storage/redis"
	"bitpesa-lending/internal/core/domain"
	"bitpesa-lending/internal/core/ports/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupIdempotencyRouter(t *testing.T, status int) (*gin.Engine, *atomic.Int32) {
	mr := miniredis.RunT(t)
	cache := redisStore.NewIdempotencyCache(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	var calls atomic.Int32
	r := gin.New()
	r.POST("/api/v1/loans", withCaller(domain.RoleBorrower), Idempotency(cache, time.Hour, zerolog.Nop()), func(c *gin.Context) {
		n := calls.Add(1)
		c.JSON(status, gin.H{"call": n})
	})
	return r, &calls
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/loans", nil)
	if key != "" {
		req.Header.Set(HeaderIdempotencyKey, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency_ReplaysSuccessfulResponse(t *testing.T) {
	r, calls := setupIdempotencyRouter(t, http.StatusCreated)

	first := postWithKey(r, "key-1")
	second := postWithKey(r, "key-1")

	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(HeaderIdempotentReplay))
	assert.Equal(t, int32(1), calls.Load())

	third := postWithKey(r, "key-2")
	assert.JSONEq(t, `{"call":2}`, third.Body.String())
}

func TestIdempotency_NoKeyAlwaysExecutes(t *testing.T) {
	r, calls := setupIdempotencyRouter(t, http.StatusCreated)

	postWithKey(r, "")
	postWithKey(r, "")
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotency_FailuresAreNotCached(t *testing.T) {
	r, calls := setupIdempotencyRouter(t, http.StatusConflict)

	postWithKey(r, "key-1")
	w := postWithKey(r, "key-1")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, w.Header().Get(HeaderIdempotentReplay))
	assert.Equal(t, int32(2), calls.Load())
}

func TestIdempotency_RejectsLongKey(t *testing.T) {
	r, calls := setupIdempotencyRouter(t, http.StatusCreated)

	w := postWithKey(r, strings.Repeat("k", maxIdempotencyKeyLength+1))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, calls.Load())
}

func TestIdempotency_CacheErrorExecutesRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockIdempotencyCache(ctrl)
	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, assert.AnError)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), time.Hour).Return(assert.AnError)

	r := gin.New()
	r.POST("/api/v1/loans", Idempotency(cache, time.Hour, zerolog.Nop()), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := postWithKey(r, "key-1")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotency_KeyIsScopedToConcretePath(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redisStore.NewIdempotencyCache(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))

	var calls atomic.Int32
	r := gin.New()
	r.POST("/api/v1/loans/:id/repay", withCaller(domain.RoleBorrower), Idempotency(cache, time.Hour, zerolog.Nop()), func(c *gin.Context) {
		n := calls.Add(1)
		c.JSON(http.StatusOK, gin.H{"loan": c.Param("id"), "call": n})
	})
	repay := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/loans/"+id+"/repay", nil)
		req.Header.Set(HeaderIdempotencyKey, "repay-key")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := repay("1")
	second := repay("2")
	again := repay("1")

	assert.JSONEq(t, `{"loan":"1","call":1}`, first.Body.String())
	assert.JSONEq(t, `{"loan":"2","call":2}`, second.Body.String())
	assert.Empty(t, second.Header().Get(HeaderIdempotentReplay))
	assert.JSONEq(t, first.Body.String(), again.Body.String())
	assert.Equal(t, "true", again.Header().Get(HeaderIdempotentReplay))
	assert.Equal(t, int32(2), calls.Load())
}
