package app

import (
	"github.com/clintwin/clintwin-backend/internal/http/middleware"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

type Middleware struct {
	RateLimiter *middleware.RateLimiter
}

func wireMiddleware(log *logger.Logger, clients Clients) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		RateLimiter: middleware.NewRateLimiter(clients.RateStore, log),
	}
}
