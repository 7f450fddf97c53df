package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/clients/rediscache"
	"github.com/clintwin/clintwin-backend/internal/http/response"
	"github.com/clintwin/clintwin-backend/internal/i18n"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

const rateWindow = time.Minute

type rateRule struct {
	prefix string
	limit  int
}

// Per-endpoint budgets. Longest matching prefix wins; anything unmatched
// falls through to the default.
var rateRules = []rateRule{
	{"/api/akinator/start", 20},
	{"/api/akinator/answer", 60},
	{"/api/identify", 10},
	{"/api/interactions", 30},
}

const defaultRateLimit = 100

// RateLimiter enforces a sliding-window request budget per client ip and
// path prefix.
type RateLimiter struct {
	log   *logger.Logger
	store rediscache.RateStore
}

func NewRateLimiter(store rediscache.RateStore, log *logger.Logger) *RateLimiter {
	return &RateLimiter{log: log.With("Middleware", "RateLimiter"), store: store}
}

func limitFor(path string) (string, int) {
	best := ""
	limit := defaultRateLimit
	for _, r := range rateRules {
		if strings.HasPrefix(path, r.prefix) && len(r.prefix) > len(best) {
			best = r.prefix
			limit = r.limit
		}
	}
	if best == "" {
		best = "default"
	}
	return best, limit
}

// Limit counts the request against its bucket and rejects with 429 once the
// bucket overflows. A failing store lets traffic through.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket, limit := limitFor(c.Request.URL.Path)
		key := c.ClientIP() + ":" + bucket

		count, err := rl.store.Hit(c.Request.Context(), key, rateWindow)
		if err != nil {
			rl.log.Warn("Rate store unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if count > limit {
			rl.log.Warn("Rate limit exceeded", "key", key, "count", count, "limit", limit)
			c.Header("Retry-After", strconv.Itoa(int(rateWindow.Seconds())))
			response.RespondErrorLocalized(c, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				i18n.T("RATE_LIMIT_EXCEEDED", i18n.LangEnglish),
				i18n.T("RATE_LIMIT_EXCEEDED", i18n.LangArabic))
			c.Abort()
			return
		}
		c.Next()
	}
}
