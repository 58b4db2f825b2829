// Package validation checks request inputs at the API boundary before they
// reach services. Invalid values produce sentinel errors from apperrors.
package validation

import (
	"fmt"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// ParseShocks converts a raw shock map keyed by asset-class strings into a
// typed shock map. Unknown class names are rejected; shock values
// themselves are range-checked by the scenario engine.
func ParseShocks(raw map[string]float64) (map[model.AssetClass]float64, error) {
	shocks := make(map[model.AssetClass]float64, len(raw))
	for className, shock := range raw {
		assetClass, err := model.ParseAssetClass(className)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidAssetClass, className)
		}
		shocks[assetClass] = shock
	}
	return shocks, nil
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(raw string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, raw)
	}
	return date.UTC(), nil
}

// ValidateCurrency checks a three-letter currency code.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrency, code)
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrency, code)
		}
	}
	return nil
}
