package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func setupRateLimiterRouter(t *testing.T, maxAttempts int, window time.Duration) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	limiter := NewRateLimiterWithConfig(client, "login", maxAttempts, window)
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, mr
}

func doLoginRequest(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	router, _ := setupRateLimiterRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		w := doLoginRequest(router)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	router, _ := setupRateLimiterRouter(t, 3, time.Minute)

	for i := 0; i < 3; i++ {
		doLoginRequest(router)
	}

	w := doLoginRequest(router)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header to be set")
	}
}

func TestRateLimiter_ResetsAfterWindow(t *testing.T) {
	router, mr := setupRateLimiterRouter(t, 2, time.Minute)

	for i := 0; i < 2; i++ {
		doLoginRequest(router)
	}
	if w := doLoginRequest(router); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 before window reset, got %d", w.Code)
	}

	mr.FastForward(2 * time.Minute)

	if w := doLoginRequest(router); w.Code != http.StatusOK {
		t.Fatalf("expected status 200 after window reset, got %d", w.Code)
	}
}

func TestRateLimiter_AllowsWhenRedisUnavailable(t *testing.T) {
	router, mr := setupRateLimiterRouter(t, 1, time.Minute)

	mr.Close()

	if w := doLoginRequest(router); w.Code != http.StatusOK {
		t.Fatalf("expected status 200 when redis is down, got %d", w.Code)
	}
}
