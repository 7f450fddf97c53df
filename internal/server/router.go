package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/clintwin/clintwin-backend/internal/http/handlers"
	"github.com/clintwin/clintwin-backend/internal/http/middleware"
	"github.com/clintwin/clintwin-backend/internal/platform/envutil"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log                 *logger.Logger
	RateLimiter         *middleware.RateLimiter
	AkinatorHandler     *handlers.AkinatorHandler
	MedicinesHandler    *handlers.MedicinesHandler
	InteractionsHandler *handlers.InteractionsHandler
	DosageHandler       *handlers.DosageHandler
	ImageHandler        *handlers.ImageHandler
	HistoryHandler      *handlers.HistoryHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("clintwin-backend"))
	router.Use(middleware.TraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))
	router.Use(middleware.Language())

	// Cors
	origins := strings.Split(envutil.String("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8081"), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Device-Id", "X-Language", "X-Request-Id"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	api.Use(cfg.RateLimiter.Limit())

	// Akinator
	akinator := api.Group("/akinator")
	{
		akinator.POST("/start", cfg.AkinatorHandler.Start)
		akinator.POST("/answer", cfg.AkinatorHandler.Answer)
		akinator.GET("/session/:id", cfg.AkinatorHandler.GetSession)
		akinator.DELETE("/session/:id", cfg.AkinatorHandler.EndSession)
		akinator.POST("/generate_mcq", cfg.AkinatorHandler.GenerateMCQ)
	}

	// Medicines
	medicines := api.Group("/medicines")
	{
		medicines.GET("", cfg.MedicinesHandler.List)
		medicines.GET("/search", cfg.MedicinesHandler.Search)
		medicines.GET("/categories", cfg.MedicinesHandler.Categories)
		medicines.GET("/:id", cfg.MedicinesHandler.Detail)
		medicines.GET("/:id/alternatives", cfg.MedicinesHandler.Alternatives)
	}

	// Interactions
	interactions := api.Group("/interactions")
	{
		interactions.POST("/check", cfg.InteractionsHandler.Check)
		interactions.POST("/check-names", cfg.InteractionsHandler.CheckByNames)
		interactions.GET("/medicine/:id", cfg.InteractionsHandler.ForMedicine)
		interactions.GET("/medicines", cfg.InteractionsHandler.Medicines)
		interactions.GET("/medicines/search", cfg.InteractionsHandler.SearchMedicines)
		interactions.GET("/severity-levels", cfg.InteractionsHandler.SeverityLevels)
	}

	// Dosage
	dosage := api.Group("/dosage")
	{
		dosage.POST("/calculate", cfg.DosageHandler.Calculate)
		dosage.GET("/age-categories", cfg.DosageHandler.AgeCategories)
		dosage.GET("/conditions", cfg.DosageHandler.Conditions)
	}

	// Image identification
	identify := api.Group("/identify")
	{
		identify.POST("/image", cfg.ImageHandler.Identify)
		identify.POST("/base64", cfg.ImageHandler.IdentifyBase64)
		identify.POST("/extract-info", cfg.ImageHandler.ExtractInfo)
		identify.GET("/formats", cfg.ImageHandler.Formats)
	}

	// History
	history := api.Group("/history")
	{
		history.POST("/scans", cfg.HistoryHandler.RecordScan)
		history.GET("/scans", cfg.HistoryHandler.ListScans)
		history.DELETE("/scans", cfg.HistoryHandler.ClearScans)
		history.POST("/favorites", cfg.HistoryHandler.AddFavorite)
		history.GET("/favorites", cfg.HistoryHandler.ListFavorites)
		history.DELETE("/favorites/:id", cfg.HistoryHandler.RemoveFavorite)
		history.POST("/reminders", cfg.HistoryHandler.CreateReminder)
		history.GET("/reminders", cfg.HistoryHandler.ListReminders)
		history.DELETE("/reminders/:id", cfg.HistoryHandler.RemoveReminder)
		history.PATCH("/reminders/:id/toggle", cfg.HistoryHandler.ToggleReminder)
	}

	return router
}
