package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/http/middleware"
	"github.com/clintwin/clintwin-backend/internal/http/response"
	"github.com/clintwin/clintwin-backend/internal/i18n"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/services"
)

// MedicinesHandler exposes catalog browsing, search, and alternatives.
type MedicinesHandler struct {
	log       *logger.Logger
	medicines *services.MedicineService
}

func NewMedicinesHandler(medicines *services.MedicineService, log *logger.Logger) *MedicinesHandler {
	return &MedicinesHandler{log: log.With("Handler", "MedicinesHandler"), medicines: medicines}
}

func intQuery(c *gin.Context, name string, def, max int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}

func (h *MedicinesHandler) List(c *gin.Context) {
	page := intQuery(c, "page", 1, 0)
	pageSize := intQuery(c, "page_size", 20, 100)

	var prescriptionOnly *bool
	if raw := c.Query("requires_prescription"); raw != "" {
		if b, err := strconv.ParseBool(raw); err == nil {
			prescriptionOnly = &b
		}
	}

	response.RespondOK(c, h.medicines.List(page, pageSize, c.Query("category"), prescriptionOnly, middleware.Lang(c)))
}

func (h *MedicinesHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_query", errors.New("query parameter 'q' is required"))
		return
	}
	limit := intQuery(c, "limit", 10, 50)
	response.RespondOK(c, h.medicines.Search(c.Request.Context(), query, limit, middleware.Lang(c)))
}

func (h *MedicinesHandler) Categories(c *gin.Context) {
	cats := h.medicines.Categories(middleware.Lang(c))
	response.RespondOK(c, gin.H{"success": true, "categories": cats, "count": len(cats)})
}

func (h *MedicinesHandler) Detail(c *gin.Context) {
	m := h.medicines.Detail(c.Param("id"))
	if m == nil {
		response.RespondErrorLocalized(c, http.StatusNotFound, "medicine_not_found",
			i18n.T("MEDICINE_NOT_FOUND", i18n.LangEnglish), i18n.T("MEDICINE_NOT_FOUND", i18n.LangArabic))
		return
	}
	response.RespondOK(c, gin.H{"success": true, "medicine": m})
}

func (h *MedicinesHandler) Alternatives(c *gin.Context) {
	limit := intQuery(c, "limit", 5, 20)
	res := h.medicines.Alternatives(c.Param("id"), limit, middleware.Lang(c))
	if res == nil {
		response.RespondErrorLocalized(c, http.StatusNotFound, "medicine_not_found",
			i18n.T("MEDICINE_NOT_FOUND", i18n.LangEnglish), i18n.T("MEDICINE_NOT_FOUND", i18n.LangArabic))
		return
	}
	response.RespondOK(c, res)
}
