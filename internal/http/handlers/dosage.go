package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/http/response"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/services"
)

var (
	errInvalidWeight = errors.New("weight_kg must be between 0 and 500")
	errInvalidAge    = errors.New("age_years must be between 0 and 150")
)

// DosageHandler exposes dose calculation.
type DosageHandler struct {
	log    *logger.Logger
	dosage *services.DosageService
}

func NewDosageHandler(dosage *services.DosageService, log *logger.Logger) *DosageHandler {
	return &DosageHandler{log: log.With("Handler", "DosageHandler"), dosage: dosage}
}

type calculateRequest struct {
	MedicineID string   `json:"medicine_id" binding:"required"`
	WeightKg   *float64 `json:"weight_kg"`
	AgeYears   *float64 `json:"age_years"`
	Conditions []string `json:"conditions"`
}

func (h *DosageHandler) Calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.WeightKg != nil && (*req.WeightKg <= 0 || *req.WeightKg > 500) {
		response.RespondError(c, http.StatusBadRequest, "invalid_weight", errInvalidWeight)
		return
	}
	if req.AgeYears != nil && (*req.AgeYears < 0 || *req.AgeYears > 150) {
		response.RespondError(c, http.StatusBadRequest, "invalid_age", errInvalidAge)
		return
	}

	res, err := h.dosage.Calculate(req.MedicineID, req.WeightKg, req.AgeYears, req.Conditions)
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "medicine_not_found", err)
		return
	}
	response.RespondOK(c, res)
}

// AgeCategories documents the dosing age bands for clients.
func (h *DosageHandler) AgeCategories(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"success": true,
		"categories": []gin.H{
			{"id": services.AgeNeonate, "range": "0-1 month"},
			{"id": services.AgeInfant, "range": "1 month - 1 year"},
			{"id": services.AgeChild, "range": "1-12 years"},
			{"id": services.AgeAdolescent, "range": "12-18 years"},
			{"id": services.AgeAdult, "range": "18-65 years"},
			{"id": services.AgeElderly, "range": "65+ years"},
		},
	})
}

// Conditions lists the patient conditions that adjust dosing warnings.
func (h *DosageHandler) Conditions(c *gin.Context) {
	response.RespondOK(c, gin.H{
		"success": true,
		"conditions": []gin.H{
			{"id": "renal_impairment", "name": "Kidney problems", "name_ar": "مشاكل الكلى"},
			{"id": "hepatic_impairment", "name": "Liver problems", "name_ar": "مشاكل الكبد"},
			{"id": "pregnancy", "name": "Pregnancy", "name_ar": "الحمل"},
			{"id": "elderly", "name": "Elderly patient", "name_ar": "مريض مسن"},
		},
	})
}
