package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/aggroplatform/aggro-admin/logger"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Headers are already written; nothing else can reach the client.
		logger.Error("Error encoding JSON response", zap.Error(err))
	}
}

// RespondError logs the error and sends a JSON error body.
func RespondError(w http.ResponseWriter, message string, status int) {
	logger.Error(message, zap.Int("status", status))
	RespondJSON(w, status, map[string]string{"error": message})
}

// RespondValidation sends the per-field validation messages so the client
// can render them inline.
func RespondValidation(w http.ResponseWriter, fieldErrors interface{}) {
	RespondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"error":  "validation failed",
		"fields": fieldErrors,
	})
}
