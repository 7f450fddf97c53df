package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/clients/rediscache"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

func limiterRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rl := NewRateLimiter(rediscache.NewMemoryRateStore(), logger.NewNop())
	r := gin.New()
	r.Use(rl.Limit())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.POST("/api/akinator/start", ok)
	r.POST("/api/akinator/answer", ok)
	r.GET("/api/medicines", ok)
	return r
}

func hit(r *gin.Engine, method, path, ip string) int {
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = ip + ":1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestLimitForPrefixes(t *testing.T) {
	cases := []struct {
		path   string
		bucket string
		limit  int
	}{
		{"/api/akinator/start", "/api/akinator/start", 20},
		{"/api/akinator/answer", "/api/akinator/answer", 60},
		{"/api/identify/image", "/api/identify", 10},
		{"/api/interactions/check", "/api/interactions", 30},
		{"/api/medicines", "default", 100},
	}
	for _, tc := range cases {
		bucket, limit := limitFor(tc.path)
		if bucket != tc.bucket || limit != tc.limit {
			t.Errorf("limitFor(%q) = (%q, %d), want (%q, %d)", tc.path, bucket, limit, tc.bucket, tc.limit)
		}
	}
}

func TestRateLimitRejectsOverBudget(t *testing.T) {
	r := limiterRouter(t)
	for i := 0; i < 20; i++ {
		if code := hit(r, http.MethodPost, "/api/akinator/start", "10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d: status %d", i+1, code)
		}
	}
	if code := hit(r, http.MethodPost, "/api/akinator/start", "10.0.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("over-budget request: status %d, want 429", code)
	}
}

func TestRateLimitBucketsAreIndependent(t *testing.T) {
	r := limiterRouter(t)
	for i := 0; i < 21; i++ {
		hit(r, http.MethodPost, "/api/akinator/start", "10.0.0.2")
	}
	if code := hit(r, http.MethodPost, "/api/akinator/answer", "10.0.0.2"); code != http.StatusOK {
		t.Fatalf("answer bucket shares start budget: status %d", code)
	}
	if code := hit(r, http.MethodPost, "/api/akinator/start", "10.0.0.3"); code != http.StatusOK {
		t.Fatalf("second client blocked by first client's budget: status %d", code)
	}
}
