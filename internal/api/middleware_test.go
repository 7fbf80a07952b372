package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIPRateLimiterRefillsAndSweeps(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(2)
	limiter.now = func() time.Time { return now }

	if !limiter.allow("10.0.0.1") || !limiter.allow("10.0.0.1") {
		t.Fatal("expected burst of 2 to pass")
	}
	if limiter.allow("10.0.0.1") {
		t.Fatal("third request within the minute should be limited")
	}
	if !limiter.allow("10.0.0.2") {
		t.Fatal("limits are per client IP")
	}

	now = now.Add(30 * time.Second)
	if !limiter.allow("10.0.0.1") {
		t.Fatal("expected one token after 30s")
	}

	now = now.Add(limiterIdleTTL + time.Second)
	limiter.allow("10.0.0.3")
	if len(limiter.entries) != 1 {
		t.Fatalf("expected idle entries to be swept, have %d", len(limiter.entries))
	}
}

func TestIPRateLimiterDisabled(t *testing.T) {
	limiter := newIPRateLimiter(0)
	for i := 0; i < 100; i++ {
		if !limiter.allow("10.0.0.1") {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		allowed    []string
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"wildcard", []string{"*"}, "https://a.example.com", http.MethodGet, "*", http.StatusOK},
		{"listed origin", []string{"https://a.example.com"}, "https://a.example.com", http.MethodGet, "https://a.example.com", http.StatusOK},
		{"unlisted origin", []string{"https://a.example.com"}, "https://b.example.com", http.MethodGet, "", http.StatusOK},
		{"preflight", []string{"*"}, "https://a.example.com", http.MethodOptions, "*", http.StatusNoContent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(CORSMiddleware(tc.allowed))
			r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
			r.OPTIONS("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(tc.method, "/ping", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Fatalf("expected allow-origin %q, got %q", tc.wantOrigin, got)
			}
		})
	}
}
