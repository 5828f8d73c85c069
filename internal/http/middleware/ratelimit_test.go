package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestKeyByCallerOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = net.JoinHostPort("203.0.113.9", "12345")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	// No identity resolved: fall back to the client IP.
	if key := KeyByCallerOrIP()(c); !strings.HasPrefix(key, "ip:") || !strings.Contains(key, "203.0.113.9") {
		t.Fatalf("expected ip-keyed bucket, got %q", key)
	}

	// Header identity beats IP.
	req.Header.Set("X-Caller-ID", "it-desk")
	if key := KeyByCallerOrIP()(c); key != "caller:it-desk" {
		t.Fatalf("expected header caller key, got %q", key)
	}

	// Context identity beats both.
	c.Set("callerID", "alice")
	if key := KeyByCallerOrIP()(c); key != "caller:alice" {
		t.Fatalf("expected context caller key, got %q", key)
	}
}

func TestRateLimiter_BucketLifecycle(t *testing.T) {
	rl := NewRateLimiter(2.0, 0, KeyByCallerOrIP())
	if rl.burst != 1 {
		t.Fatalf("burst <= 0 should coerce to 1, got %d", rl.burst)
	}

	// Same key resolves to the same limiter instance.
	lim := rl.bucketFor("caller:alice")
	if lim == nil || rl.bucketFor("caller:alice") != lim {
		t.Fatal("bucket not reused across lookups")
	}

	// Opportunistic GC drops idle buckets, including on the triggering lookup.
	rl.mu.Lock()
	rl.ttl = time.Nanosecond
	rl.buckets["caller:stale"] = &bucket{
		limiter:  rate.NewLimiter(1, 1),
		lastSeen: time.Now().Add(-time.Hour),
	}
	rl.lookups = gcEvery - 1
	rl.mu.Unlock()

	_ = rl.bucketFor("caller:fresh")

	rl.mu.Lock()
	_, stale := rl.buckets["caller:stale"]
	_, fresh := rl.buckets["caller:fresh"]
	rl.mu.Unlock()
	if stale {
		t.Error("stale bucket survived GC")
	}
	if !fresh {
		t.Error("fresh bucket not created")
	}
}

func TestIsRateBypass(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	if IsRateBypass(c) {
		t.Fatal("bypass must default to false")
	}
	c.Set(ctxKeyRateBypass, true)
	if !IsRateBypass(c) {
		t.Fatal("bypass flag not honored")
	}
	c.Set(ctxKeyRateBypass, "yes") // wrong type reads as false
	if IsRateBypass(c) {
		t.Fatal("non-bool flag must read as false")
	}
}

func TestRateLimiter_Handler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// burst 1: the first request drains the bucket, the second is rejected.
	rl := NewRateLimiter(1.0, 1, KeyByCallerOrIP())

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Header("X-Request-ID", "rid-1"); c.Next() })
	r.Use(rl.Handler())
	r.GET("/tokens/last-id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/tokens/last-id", nil))
	if w1.Code != http.StatusOK {
		t.Fatalf("first request: %d", w1.Code)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/tokens/last-id", nil))
	if w2.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: %d, want 429", w2.Code)
	}
	if got := w2.Header().Get("Retry-After"); got != "1" {
		t.Fatalf("Retry-After = %q", got)
	}
	var body map[string]any
	if err := json.Unmarshal(w2.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if body["code"] != "rate_limited" || body["request_id"] != "rid-1" {
		t.Fatalf("unexpected body: %v", body)
	}

	// A flagged replay sails through the same exhausted limiter.
	replay := gin.New()
	replay.Use(func(c *gin.Context) { c.Set(ctxKeyRateBypass, true); c.Next() })
	replay.Use(rl.Handler())
	replay.GET("/tokens/last-id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w3 := httptest.NewRecorder()
	replay.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/tokens/last-id", nil))
	if w3.Code != http.StatusOK {
		t.Fatalf("replay bypass: %d, want 200", w3.Code)
	}
}
