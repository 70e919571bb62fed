package handlers

import (
	"fmt"
	"net/http"

	"github.com/Project-Sylos/Arbor/internal/api/models"
	"github.com/Project-Sylos/Arbor/sdk"
)

// SystemHandler handles system-level endpoints
type SystemHandler struct {
	BaseHandler
	fs *sdk.Arbor
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(fs *sdk.Arbor) *SystemHandler {
	return &SystemHandler{fs: fs}
}

// Stats handles GET /stats
func (h *SystemHandler) Stats(w http.ResponseWriter, req *http.Request) {
	count, err := h.fs.CountNodes(req.Context())
	if err != nil {
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to count nodes: %v", err))
		return
	}
	h.sendJSON(w, http.StatusOK, models.Stats{Nodes: count})
}

// Reset handles POST /reset, clearing all nodes and history
func (h *SystemHandler) Reset(w http.ResponseWriter, req *http.Request) {
	if err := h.fs.Reset(req.Context()); err != nil {
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to reset: %v", err))
		return
	}
	h.sendOK(w, "Store reset")
}
