package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/catalog"
	"github.com/clintwin/clintwin-backend/internal/http/response"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/services"
)

// InteractionsHandler exposes drug-drug interaction checks.
type InteractionsHandler struct {
	log          *logger.Logger
	interactions *services.InteractionService
}

func NewInteractionsHandler(interactions *services.InteractionService, log *logger.Logger) *InteractionsHandler {
	return &InteractionsHandler{log: log.With("Handler", "InteractionsHandler"), interactions: interactions}
}

type checkRequest struct {
	MedicineIDs   []string `json:"medicine_ids" binding:"required"`
	IncludeGroups *bool    `json:"include_groups"`
}

func includeGroups(flag *bool) bool {
	return flag == nil || *flag
}

func (h *InteractionsHandler) Check(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, h.interactions.CheckByIDs(req.MedicineIDs, includeGroups(req.IncludeGroups)))
}

type checkByNamesRequest struct {
	MedicineNames []string `json:"medicine_names" binding:"required"`
	IncludeGroups *bool    `json:"include_groups"`
}

func (h *InteractionsHandler) CheckByNames(c *gin.Context) {
	var req checkByNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	response.RespondOK(c, h.interactions.CheckByNames(req.MedicineNames, includeGroups(req.IncludeGroups)))
}

func (h *InteractionsHandler) ForMedicine(c *gin.Context) {
	report, err := h.interactions.CheckSingle(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "medicine_not_found", err)
		return
	}
	response.RespondOK(c, report)
}

// Medicines returns the slim selection list for the interaction checker UI.
func (h *InteractionsHandler) Medicines(c *gin.Context) {
	items := h.interactions.PickerList()
	response.RespondOK(c, gin.H{"success": true, "medicines": items, "count": len(items)})
}

// SearchMedicines serves autocomplete for the interaction checker UI.
func (h *InteractionsHandler) SearchMedicines(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_query", nil)
		return
	}
	limit := intQuery(c, "limit", 10, 50)
	items := h.interactions.PickerSearch(q, limit)
	response.RespondOK(c, gin.H{"query": q, "results": items, "count": len(items)})
}

// SeverityLevels documents the severity scale for clients.
func (h *InteractionsHandler) SeverityLevels(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"success": true,
		"levels": []gin.H{
			{"id": catalog.SeverityContraindicated, "risk": services.RiskCritical, "description": "Never combine these medicines"},
			{"id": catalog.SeverityMajor, "risk": services.RiskHigh, "description": "Combination may cause serious harm"},
			{"id": catalog.SeverityModerate, "risk": services.RiskModerate, "description": "May require dose adjustment or monitoring"},
			{"id": catalog.SeverityMinor, "risk": services.RiskLow, "description": "Usually safe, minor effects possible"},
		},
	})
}
