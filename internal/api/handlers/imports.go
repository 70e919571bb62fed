package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Project-Sylos/Arbor/internal/arbor"
	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/Project-Sylos/Arbor/sdk"
)

// ImportHandler handles the batch import endpoint
type ImportHandler struct {
	BaseHandler
	fs *sdk.Arbor
}

// NewImportHandler creates a new import handler
func NewImportHandler(fs *sdk.Arbor) *ImportHandler {
	return &ImportHandler{fs: fs}
}

// Import handles POST /imports. A rejected batch applies nothing.
func (h *ImportHandler) Import(w http.ResponseWriter, req *http.Request) {
	var batch types.ImportBatch
	if err := json.NewDecoder(req.Body).Decode(&batch); err != nil {
		h.sendError(w, http.StatusBadRequest, fmt.Sprintf("Validation Failed: %v", err))
		return
	}

	if err := h.fs.Import(req.Context(), &batch); err != nil {
		if arbor.IsValidation(err) {
			h.sendError(w, http.StatusBadRequest, fmt.Sprintf("Validation Failed: %v", err))
			return
		}
		h.sendError(w, http.StatusInternalServerError, fmt.Sprintf("Import failed: %v", err))
		return
	}

	h.sendOK(w, "Import applied")
}
