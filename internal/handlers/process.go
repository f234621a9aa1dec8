// internal/handlers/process.go
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"assistant-backend/internal/middleware"
	"assistant-backend/internal/models"
	"assistant-backend/internal/quota"
	"assistant-backend/internal/services"
	apperrors "assistant-backend/pkg/errors"
	"assistant-backend/pkg/utils"
)

// ProcessHandler is the metered entry point: privilege resolution, quota
// pre-checks, agent work, then usage recording.
type ProcessHandler struct {
	usageService services.UsageService
	agentService services.AgentService
}

func NewProcessHandler(usageService services.UsageService, agentService services.AgentService) *ProcessHandler {
	return &ProcessHandler{
		usageService: usageService,
		agentService: agentService,
	}
}

func (h *ProcessHandler) ProcessContent(w http.ResponseWriter, r *http.Request) {
	acct, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	modality, err := quota.ParseModality(chi.URLParam(r, "modality"))
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrValidation,
			http.StatusBadRequest,
			"unknown modality: expected video, audio, document or image",
		))
		return
	}

	var req models.ProcessRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(apperrors.ErrValidation, http.StatusBadRequest, "validation failed", err.Error()))
		return
	}

	if decision := h.usageService.CheckRequestAllowed(acct, modality); !decision.Allowed {
		utils.SendErrorResponse(w, apperrors.NewQuotaExceededError(decision.Reason))
		return
	}

	result, err := h.agentService.Process(r.Context(), modality, req.Content)
	if err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(
			apperrors.ErrInternalServer,
			http.StatusInternalServerError,
			"content processing failed",
		))
		return
	}

	// The work is done; recording is unconditional from here on.
	if _, err := h.usageService.RecordUsage(r.Context(), acct.UserID, modality, result.Tokens, result.Cost); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, models.ProcessResponse{
		Message:    "Content processed successfully",
		Modality:   modality.String(),
		Result:     result.Output,
		TokensUsed: result.Tokens,
		Cost:       result.Cost,
	})
}
