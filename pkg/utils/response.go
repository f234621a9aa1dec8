// pkg/utils/response.go
package utils

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"assistant-backend/internal/models"
	apperrors "assistant-backend/pkg/errors"
)

// SendJSONResponse sends a JSON response with proper error handling
func SendJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	// Marshal the data first to catch any encoding errors
	jsonData, err := json.Marshal(data)
	if err != nil {
		zap.L().Error("Failed to marshal JSON response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{
			"error": "Internal server error: failed to encode response",
		})
		return
	}

	w.WriteHeader(statusCode)
	if _, writeErr := w.Write(jsonData); writeErr != nil {
		zap.L().Error("Failed to write response", zap.Error(writeErr))
	}
}

// SendErrorResponse maps an error to its HTTP status and JSON body. AppError
// messages are client-safe; anything else is reported as a generic failure
// so internal detail never leaks.
func SendErrorResponse(w http.ResponseWriter, err error) {
	statusCode := apperrors.GetStatusCode(err)

	if appErr, ok := err.(*apperrors.AppError); ok {
		SendJSONResponse(w, statusCode, models.ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Type,
		})
		return
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	SendJSONResponse(w, http.StatusInternalServerError, models.ErrorResponse{
		Error: "Internal server error",
		Code:  apperrors.ErrInternalServer,
	})
}

// DecodeJSONBody decodes a JSON request body into dst.
func DecodeJSONBody(r *http.Request, dst interface{}) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		return apperrors.NewAppError(apperrors.ErrBadRequest, http.StatusBadRequest, "invalid JSON format")
	}
	return nil
}
