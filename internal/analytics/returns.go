package analytics

import (
	"time"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// SimpleReturn computes (currentValue - costBasis) / costBasis over
// already-normalized amounts. A zero cost basis has no defined return and
// yields ErrZeroCostBasis, never Inf or NaN.
func SimpleReturn(costBasisBase, currentValueBase float64) (float64, error) {
	if costBasisBase == 0 {
		return 0, apperrors.ErrZeroCostBasis
	}
	return (currentValueBase - costBasisBase) / costBasisBase, nil
}

// InvestmentSimpleReturn normalizes an investment's cost basis at its
// purchase-date rate and its current value at the as-of-date rate before
// computing the simple return. Normalizing both sides at today's rate
// would blend currency gain into the cost basis; this keeps the figure a
// currency-blind cross-check on asset performance.
func InvestmentSimpleReturn(inv model.Investment, asOf time.Time, base string, rates *RateTable) (float64, error) {
	costBase, err := rates.Normalize(inv.CostBasis, inv.Currency, inv.PurchaseDate, base)
	if err != nil {
		return 0, err
	}
	valueBase, err := rates.Normalize(inv.CurrentValue, inv.Currency, asOf, base)
	if err != nil {
		return 0, err
	}
	return SimpleReturn(costBase, valueBase)
}

// MoneyWeightedReturn computes the annualized IRR for one open position:
// transaction flows plus the synthetic terminal value flow at asOf.
func MoneyWeightedReturn(inv model.Investment, txs []model.Transaction, asOf time.Time, base string, rates *RateTable) (float64, error) {
	flows, err := BuildCashFlows(inv, txs, asOf, base, rates)
	if err != nil {
		return 0, err
	}
	return IRR(flows)
}

// PooledMoneyWeightedReturn solves one IRR over the concatenation of the
// given per-investment series.
func PooledMoneyWeightedReturn(series ...[]CashFlow) (float64, error) {
	return IRR(PoolCashFlows(series...))
}
