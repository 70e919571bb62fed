package handlers

import (
	"fmt"
	"net/http"

	"github.com/Project-Sylos/Arbor/internal/arbor"
	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/Project-Sylos/Arbor/sdk"
	"github.com/go-chi/chi/v5"
)

// NodeHandler handles subtree queries and cascading deletes
type NodeHandler struct {
	BaseHandler
	fs *sdk.Arbor
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(fs *sdk.Arbor) *NodeHandler {
	return &NodeHandler{fs: fs}
}

// GetNode handles GET /nodes/{id}. The tree is returned bare, not
// wrapped, so the body is the node object with nested children.
func (h *NodeHandler) GetNode(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	if id == "" {
		h.sendError(w, http.StatusBadRequest, "Validation Failed: node id is required")
		return
	}

	tree, err := h.fs.GetSubtree(req.Context(), id)
	if err != nil {
		if arbor.IsNotFound(err) {
			h.sendError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to read subtree: %v", err))
		return
	}

	h.sendJSON(w, http.StatusOK, tree)
}

// DeleteNode handles DELETE /delete/{id}?date=... The date is
// required by the contract but recorded for audit only.
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	if id == "" {
		h.sendError(w, http.StatusBadRequest, "Validation Failed: node id is required")
		return
	}

	date, err := types.ParseTimestamp(req.URL.Query().Get("date"))
	if err != nil {
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("Validation Failed: %v", err))
		return
	}

	if err := h.fs.Delete(req.Context(), id, date.Time); err != nil {
		if arbor.IsNotFound(err) {
			h.sendError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to delete node: %v", err))
		return
	}

	h.sendOK(w, "Node deleted successfully")
}
