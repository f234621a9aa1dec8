// internal/handlers/usage.go
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

type UsageHandler struct {
	usageService services.UsageService
}

func NewUsageHandler(usageService services.UsageService) *UsageHandler {
	return &UsageHandler{
		usageService: usageService,
	}
}

// GetAnalytics returns the caller's full reporting view.
func (h *UsageHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	acct, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	view, err := h.usageService.GetAnalyticsView(r.Context(), acct.UserID)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, view)
}

// GetLimits returns just the remaining-quota slice for the current month.
func (h *UsageHandler) GetLimits(w http.ResponseWriter, r *http.Request) {
	acct, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, quota.LimitsView(acct))
}

// GetPrivileges exposes the resolved capability set for frontend
// authorization decisions.
func (h *UsageHandler) GetPrivileges(w http.ResponseWriter, r *http.Request) {
	acct, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, h.usageService.ResolvePrivileges(acct))
}

// CheckRequest is the advisory pre-check for one more request of a modality.
func (h *UsageHandler) CheckRequest(w http.ResponseWriter, r *http.Request) {
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

	utils.SendJSONResponse(w, http.StatusOK, h.usageService.CheckRequestAllowed(acct, modality))
}

// CheckTokens is the advisory pre-check for a planned token consumption.
func (h *UsageHandler) CheckTokens(w http.ResponseWriter, r *http.Request) {
	acct, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	var req models.CheckTokensRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		utils.SendErrorResponse(w, apperrors.NewAppError(apperrors.ErrValidation, http.StatusBadRequest, "validation failed", err.Error()))
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, h.usageService.CheckTokensAllowed(acct, req.Tokens))
}
