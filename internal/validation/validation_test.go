package validation

import (
	"errors"
	"testing"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

func TestParseShocks(t *testing.T) {
	shocks, err := ParseShocks(map[string]float64{
		"Public Equity": -0.30,
		"Crypto":        -0.50,
	})
	if err != nil {
		t.Fatalf("ParseShocks returned error: %v", err)
	}
	if shocks[model.AssetPublicEquity] != -0.30 {
		t.Errorf("expected -0.30 for Public Equity, got %v", shocks[model.AssetPublicEquity])
	}
	if shocks[model.AssetCrypto] != -0.50 {
		t.Errorf("expected -0.50 for Crypto, got %v", shocks[model.AssetCrypto])
	}
}

func TestParseShocks_UnknownClass(t *testing.T) {
	_, err := ParseShocks(map[string]float64{"Stocks": -0.10})
	if !errors.Is(err, apperrors.ErrInvalidAssetClass) {
		t.Errorf("expected ErrInvalidAssetClass, got %v", err)
	}
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if date.Year() != 2024 || date.Month() != 6 || date.Day() != 1 {
		t.Errorf("unexpected date: %v", date)
	}

	if _, err := ParseDate("06/01/2024"); !errors.Is(err, apperrors.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestValidateCurrency(t *testing.T) {
	if err := ValidateCurrency("CAD"); err != nil {
		t.Errorf("CAD should be valid: %v", err)
	}
	for _, invalid := range []string{"", "CA", "CADX", "ca d", "c4d"} {
		if err := ValidateCurrency(invalid); !errors.Is(err, apperrors.ErrInvalidCurrency) {
			t.Errorf("%q should be invalid, got %v", invalid, err)
		}
	}
}
