package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clintwin/clintwin-backend/internal/akinator"
	"github.com/clintwin/clintwin-backend/internal/http/response"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
)

// AkinatorHandler exposes the guessing-game session API.
type AkinatorHandler struct {
	log    *logger.Logger
	engine *akinator.Engine
}

func NewAkinatorHandler(engine *akinator.Engine, log *logger.Logger) *AkinatorHandler {
	return &AkinatorHandler{log: log.With("Handler", "AkinatorHandler"), engine: engine}
}

func (h *AkinatorHandler) Start(c *gin.Context) {
	res := h.engine.Start(c.Request.Context())
	response.RespondOK(c, res)
}

type answerRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Answer    string `json:"answer" binding:"required"`
}

func (h *AkinatorHandler) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	turn, err := h.engine.SubmitAnswer(c.Request.Context(), req.SessionID, req.Answer)
	if err != nil {
		switch {
		case errors.Is(err, akinator.ErrSessionNotFound):
			response.RespondError(c, http.StatusNotFound, "session_not_found", err)
		case errors.Is(err, akinator.ErrNoCurrentQuestion):
			response.RespondError(c, http.StatusBadRequest, "no_current_question", err)
		default:
			response.RespondError(c, http.StatusInternalServerError, "internal_error", err)
		}
		return
	}

	if turn.Question != nil {
		response.RespondOK(c, turn.Question)
		return
	}
	response.RespondOK(c, turn.Result)
}

func (h *AkinatorHandler) GetSession(c *gin.Context) {
	snap, err := h.engine.Snapshot(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "session_not_found", err)
		return
	}
	response.RespondOK(c, snap)
}

func (h *AkinatorHandler) EndSession(c *gin.Context) {
	if err := h.engine.End(c.Param("id")); err != nil {
		response.RespondError(c, http.StatusNotFound, "session_not_found", err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "message": "Session ended"})
}

type generateMCQRequest struct {
	MedicineIDs     []string `json:"medicine_ids"`
	AskedAttributes []string `json:"asked_attributes"`
}

// GenerateMCQ composes a single multiple-choice question outside any session.
func (h *AkinatorHandler) GenerateMCQ(c *gin.Context) {
	var req generateMCQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	q, distribution, err := h.engine.ComposeAdHoc(c.Request.Context(), req.MedicineIDs, req.AskedAttributes)
	if err != nil {
		response.RespondError(c, http.StatusUnprocessableEntity, "no_question_available", err)
		return
	}
	response.RespondOK(c, gin.H{
		"success":      true,
		"question":     q,
		"distribution": distribution,
	})
}
