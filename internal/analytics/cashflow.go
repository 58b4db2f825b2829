package analytics

import (
	"sort"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

// CashFlow is one dated, signed, base-currency flow in a money-weighted
// return series. Negative amounts are money leaving the investor (buys,
// capital calls, fees); positive amounts are money coming back (sells,
// dividends, distributions).
type CashFlow struct {
	Date   time.Time
	Amount float64
}

// BuildCashFlows derives the chronological signed cash-flow series for one
// investment. Every flow is normalized to base currency at its own date,
// and a synthetic terminal flow of +currentValue (normalized at asOf) is
// appended to represent unrealized value. The terminal flow is what makes
// the IRR a money-weighted return over an open position rather than a
// realized-cash-only figure; alternative unrealized-gain treatments change
// the IRR semantics.
//
// Transactions dated after asOf are excluded. Flows sharing a date are
// summed, since IRR is ill-defined over duplicate dates of mixed sign.
func BuildCashFlows(inv model.Investment, txs []model.Transaction, asOf time.Time, base string, rates *RateTable) ([]CashFlow, error) {
	cutoff := dateOnly(asOf)

	flows := make([]CashFlow, 0, len(txs)+1)
	for _, tx := range txs {
		d := dateOnly(tx.Date)
		if d.After(cutoff) {
			continue
		}
		amount, err := rates.Normalize(tx.Amount, tx.Currency, d, base)
		if err != nil {
			return nil, err
		}
		if tx.Type.IsOutflow() {
			amount = -amount
		}
		flows = append(flows, CashFlow{Date: d, Amount: amount})
	}

	terminal, err := rates.Normalize(inv.CurrentValue, inv.Currency, cutoff, base)
	if err != nil {
		return nil, err
	}
	flows = append(flows, CashFlow{Date: cutoff, Amount: terminal})

	return mergeFlows(flows), nil
}

// PoolCashFlows concatenates already-normalized series into one pooled
// series. Entity and portfolio money-weighted returns are solved over the
// pooled series, not averaged per investment, because per-investment IRR
// is not additive.
func PoolCashFlows(series ...[]CashFlow) []CashFlow {
	var all []CashFlow
	for _, s := range series {
		all = append(all, s...)
	}
	return mergeFlows(all)
}

// mergeFlows sorts ascending by date and sums flows on the same date.
func mergeFlows(flows []CashFlow) []CashFlow {
	sort.SliceStable(flows, func(i, j int) bool {
		return flows[i].Date.Before(flows[j].Date)
	})

	merged := make([]CashFlow, 0, len(flows))
	for _, f := range flows {
		if n := len(merged); n > 0 && merged[n-1].Date.Equal(f.Date) {
			merged[n-1].Amount += f.Amount
			continue
		}
		merged = append(merged, f)
	}
	return merged
}
