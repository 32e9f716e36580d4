package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestAllow_Burst(t *testing.T) {
	l := New(Config{RequestsPerMinute: 60, BurstSize: 5, CleanupInterval: time.Minute})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		if !l.Allow("client") {
			t.Fatalf("Request %d within burst should be allowed", i)
		}
	}
	if l.Allow("client") {
		t.Error("Request beyond burst should be denied")
	}
}

func TestAllow_Refill(t *testing.T) {
	l := New(Config{RequestsPerMinute: 6000, BurstSize: 1, CleanupInterval: time.Minute})
	defer l.Stop()

	if !l.Allow("client") {
		t.Fatal("First request should be allowed")
	}
	// 6000/min = 100 tokens per second; 50ms refills well over one token.
	time.Sleep(50 * time.Millisecond)
	if !l.Allow("client") {
		t.Error("Request after refill should be allowed")
	}
}

func TestAllow_IndependentKeys(t *testing.T) {
	l := New(Config{RequestsPerMinute: 60, BurstSize: 1, CleanupInterval: time.Minute})
	defer l.Stop()

	if !l.Allow("a") {
		t.Fatal("First request for a should be allowed")
	}
	if !l.Allow("b") {
		t.Error("First request for b should be allowed regardless of a")
	}
}

func TestMiddleware_Returns429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := New(Config{RequestsPerMinute: 60, BurstSize: 1, CleanupInterval: time.Minute})
	defer l.Stop()

	r := gin.New()
	r.Use(l.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest("GET", "/", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("First request should pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest("GET", "/", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("Second request should be limited, got %d", second.Code)
	}
}

func TestDefaultsApplied(t *testing.T) {
	l := New(Config{})
	defer l.Stop()

	if l.cfg.RequestsPerMinute != DefaultConfig().RequestsPerMinute {
		t.Errorf("Expected default rpm, got %d", l.cfg.RequestsPerMinute)
	}
}
