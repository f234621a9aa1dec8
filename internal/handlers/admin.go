// internal/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"assistant-backend/internal/middleware"
	"assistant-backend/internal/models"
	"assistant-backend/internal/services"
	apperrors "assistant-backend/pkg/errors"
	"assistant-backend/pkg/utils"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(adminService services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	resp, err := h.adminService.ListAccounts(r.Context(), actor)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, resp)
}

func (h *AdminHandler) GetAccountAnalytics(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	targetID := chi.URLParam(r, "userId")
	if targetID == "" {
		utils.SendErrorResponse(w, apperrors.NewAppError(apperrors.ErrValidation, http.StatusBadRequest, "user ID is required"))
		return
	}

	view, err := h.adminService.GetAccountAnalytics(r.Context(), actor, targetID)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, view)
}

func (h *AdminHandler) UpdateUserSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	targetID := chi.URLParam(r, "userId")
	var req models.UpdateUserSettingsRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	updated, err := h.adminService.UpdateUserSettings(r.Context(), actor, targetID, &req)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, updated)
}

func (h *AdminHandler) UpdateAdminSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	targetID := chi.URLParam(r, "userId")
	var req models.UpdateAdminSettingsRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	updated, err := h.adminService.UpdateAdminSettings(r.Context(), actor, targetID, &req)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, updated)
}

func (h *AdminHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	targetID := chi.URLParam(r, "userId")
	var req models.SetActiveRequest
	if err := utils.DecodeJSONBody(r, &req); err != nil {
		utils.SendErrorResponse(w, err)
		return
	}

	updated, err := h.adminService.SetActive(r.Context(), actor, targetID, req.Active)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, updated)
}

func (h *AdminHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.AccountFromContext(r.Context())
	if !ok {
		utils.SendErrorResponse(w, apperrors.NewUnauthorizedError("authentication required"))
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	targetID := r.URL.Query().Get("targetId")

	entries, err := h.adminService.GetActivity(r.Context(), actor, targetID, limit)
	if err != nil {
		utils.SendErrorResponse(w, err)
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, models.ActivityResponse{
		Message:    "Activity retrieved successfully",
		Activities: entries,
	})
}
