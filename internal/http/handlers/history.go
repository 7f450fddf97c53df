package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/http/middleware"
	"github.com/clintwin/clintwin-backend/internal/http/response"
	"github.com/clintwin/clintwin-backend/internal/platform/dbctx"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/services"
)

var errNotFound = errors.New("not found")

// HistoryHandler exposes per-device scan history, favorites, and reminders.
// Devices identify themselves with the X-Device-Id header; there are no
// accounts.
type HistoryHandler struct {
	log     *logger.Logger
	history *services.HistoryService
}

func NewHistoryHandler(history *services.HistoryService, log *logger.Logger) *HistoryHandler {
	return &HistoryHandler{log: log.With("Handler", "HistoryHandler"), history: history}
}

func deviceID(c *gin.Context) string {
	if id := c.GetHeader("X-Device-Id"); id != "" {
		return id
	}
	return "anonymous"
}

func (h *HistoryHandler) RecordScan(c *gin.Context) {
	var req services.RecordScanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.history.RecordScan(dbctx.From(c.Request.Context()), deviceID(c), req)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "scan_rejected", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "scan": row})
}

func (h *HistoryHandler) ListScans(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}
	scans, err := h.history.ListScans(dbctx.From(c.Request.Context()), deviceID(c), c.Query("scan_type"), limit, middleware.Lang(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "scans": scans, "count": len(scans)})
}

func (h *HistoryHandler) ClearScans(c *gin.Context) {
	if err := h.history.ClearScans(dbctx.From(c.Request.Context()), deviceID(c)); err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "message": "Scan history cleared"})
}

type addFavoriteRequest struct {
	MedicineID string `json:"medicine_id" binding:"required"`
	Notes      string `json:"notes"`
}

func (h *HistoryHandler) AddFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, created, err := h.history.AddFavorite(dbctx.From(c.Request.Context()), deviceID(c), req.MedicineID, req.Notes)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "favorite_rejected", err)
		return
	}
	if !created {
		response.RespondOK(c, gin.H{"success": false, "message": "Medicine is already in favorites", "favorite": row})
		return
	}
	response.RespondOK(c, gin.H{"success": true, "favorite": row})
}

func (h *HistoryHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.history.ListFavorites(dbctx.From(c.Request.Context()), deviceID(c), middleware.Lang(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "favorites": favorites, "count": len(favorites)})
}

func (h *HistoryHandler) RemoveFavorite(c *gin.Context) {
	ok, err := h.history.RemoveFavorite(dbctx.From(c.Request.Context()), deviceID(c), c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if !ok {
		response.RespondError(c, http.StatusNotFound, "favorite_not_found", errNotFound)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "message": "Favorite removed"})
}

func (h *HistoryHandler) CreateReminder(c *gin.Context) {
	var req services.CreateReminderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	row, err := h.history.CreateReminder(dbctx.From(c.Request.Context()), deviceID(c), req)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "reminder_rejected", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "reminder": row})
}

func (h *HistoryHandler) ListReminders(c *gin.Context) {
	activeOnly := true
	if raw := c.Query("active_only"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			activeOnly = b
		}
	}
	reminders, err := h.history.ListReminders(dbctx.From(c.Request.Context()), deviceID(c), activeOnly, middleware.Lang(c))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "reminders": reminders, "count": len(reminders)})
}

func (h *HistoryHandler) RemoveReminder(c *gin.Context) {
	ok, err := h.history.RemoveReminder(dbctx.From(c.Request.Context()), deviceID(c), c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if !ok {
		response.RespondError(c, http.StatusNotFound, "reminder_not_found", errNotFound)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "message": "Reminder removed"})
}

func (h *HistoryHandler) ToggleReminder(c *gin.Context) {
	row, err := h.history.ToggleReminder(dbctx.From(c.Request.Context()), deviceID(c), c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if row == nil {
		response.RespondError(c, http.StatusNotFound, "reminder_not_found", errNotFound)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "reminder": row})
}
