package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondError sends a structured error response
func respondError(w http.ResponseWriter, status int, message, detail string) {
	respondJSON(w, status, map[string]string{
		"error":  message,
		"detail": detail,
	})
}

// respondServiceError maps sentinel errors to HTTP status codes. Unknown
// errors become 500s with the detail preserved.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperrors.ErrEntityNotFound),
		errors.Is(err, apperrors.ErrInvestmentNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrScenarioNotFound),
		errors.Is(err, apperrors.ErrBenchmarkNotFound):
		respondError(w, http.StatusNotFound, "not found", err.Error())

	case errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInvalidDate),
		errors.Is(err, apperrors.ErrInvalidCurrency),
		errors.Is(err, apperrors.ErrInvalidAssetClass),
		errors.Is(err, apperrors.ErrInvalidTransactionType),
		errors.Is(err, apperrors.ErrNegativeQuantity),
		errors.Is(err, apperrors.ErrInvalidCSVHeaders),
		errors.Is(err, apperrors.ErrInvalidShockValue):
		respondError(w, http.StatusBadRequest, "validation failed", err.Error())

	case errors.Is(err, apperrors.ErrRateNotFound),
		errors.Is(err, apperrors.ErrBenchmarkDataGap),
		errors.Is(err, apperrors.ErrInsufficientCashFlows),
		errors.Is(err, apperrors.ErrIRRNotConverged),
		errors.Is(err, apperrors.ErrZeroCostBasis),
		errors.Is(err, apperrors.ErrDataUnavailable):
		respondError(w, http.StatusUnprocessableEntity, "computation failed", err.Error())

	case errors.Is(err, apperrors.ErrAdvisorUnavailable):
		respondError(w, http.StatusServiceUnavailable, "advisor unavailable", err.Error())

	default:
		respondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// parseDateParam reads a YYYY-MM-DD query parameter. A missing parameter
// returns the fallback; a malformed one returns ErrInvalidDate.
func parseDateParam(r *http.Request, name string, fallback time.Time) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, apperrors.ErrInvalidDate
	}
	return date.UTC(), nil
}
