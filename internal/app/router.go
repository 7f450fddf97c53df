package app

import (
	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                 log,
		RateLimiter:         middleware.RateLimiter,
		AkinatorHandler:     handlers.Akinator,
		MedicinesHandler:    handlers.Medicines,
		InteractionsHandler: handlers.Interactions,
		DosageHandler:       handlers.Dosage,
		ImageHandler:        handlers.Image,
		HistoryHandler:      handlers.History,
	})
}
