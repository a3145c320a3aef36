package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
)

func TestRateLimiterPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(1, 2)
	fixed := time.Now()
	rl.now = func() time.Time { return fixed }

	r := gin.New()
	r.Use(rl.Middleware())
	r.POST("/api/contact", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
		req.RemoteAddr = ip + ":1234"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if got := send("10.0.0.1"); got != http.StatusOK {
			t.Fatalf("burst request %d: want=200 got=%d", i, got)
		}
	}
	if got := send("10.0.0.1"); got != http.StatusTooManyRequests {
		t.Fatalf("over burst: want=429 got=%d", got)
	}
	if got := send("10.0.0.2"); got != http.StatusOK {
		t.Fatalf("other ip: want=200 got=%d", got)
	}

	fixed = fixed.Add(2 * time.Second)
	if got := send("10.0.0.1"); got != http.StatusOK {
		t.Fatalf("after refill: want=200 got=%d", got)
	}
}

func TestRateLimiterSweepAndDisabled(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	start := time.Now()
	rl.now = func() time.Time { return start }
	rl.Allow("a")
	rl.now = func() time.Time { return start.Add(visitorIdleTTL + time.Second) }
	rl.sweep()
	if len(rl.visitors) != 0 {
		t.Fatalf("idle visitor kept: %d", len(rl.visitors))
	}

	off := NewRateLimiter(0, 0)
	for i := 0; i < 10; i++ {
		if !off.Allow("a") {
			t.Fatalf("disabled limiter refused request %d", i)
		}
	}
}

func TestAttachRequestContextReadsClientID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachRequestContext())
	var got string
	r.GET("/x", func(c *gin.Context) {
		if rd := ctxutil.GetRequestData(c.Request.Context()); rd != nil {
			got = rd.ClientID
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderClientID, " device-42 ")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if got != "device-42" {
		t.Fatalf("client id: want=device-42 got=%q", got)
	}
}
