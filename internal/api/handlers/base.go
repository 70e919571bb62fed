package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Project-Sylos/Arbor/internal/api/models"
)

// BaseHandler provides common functionality for all API handlers
type BaseHandler struct{}

// sendJSON sends a JSON response with the given status code and data
func (h *BaseHandler) sendJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response with the given status code and message
func (h *BaseHandler) sendError(w http.ResponseWriter, statusCode int, message string) {
	h.sendJSON(w, statusCode, models.Error{
		Code:    statusCode,
		Message: message,
	})
}

// sendOK sends a 200 acknowledgement with the given message
func (h *BaseHandler) sendOK(w http.ResponseWriter, message string) {
	h.sendJSON(w, http.StatusOK, models.Status{
		Code:    http.StatusOK,
		Message: message,
	})
}
