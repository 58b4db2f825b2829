package handlers

import (
	"net/http"

	"github.com/wealthos/wealth-os-backend/internal/service"
)

// ImportHandler handles CSV import HTTP requests
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// Transactions handles POST /api/import/transactions. The body is the CSV
// file itself, or a multipart form with a "file" field.
func (h *ImportHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	body := r.Body

	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		body = file
	}

	result, err := h.importService.ImportTransactions(body)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
