// Package analytics implements the valuation and analytics engine:
// currency normalization, cash-flow construction, simple and money-weighted
// returns, benchmark alignment, concentration/liquidity analysis, and
// scenario stress-testing.
//
// The engine is a pure function of its inputs. It performs no I/O, holds no
// state between calls, and is safe for concurrent use as long as each call
// receives its own input snapshot.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
	"github.com/wealthos/wealth-os-backend/internal/model"
)

// RateTable is a time-indexed exchange-rate lookup. It is built once per
// call from the rates the caller supplies and is never cached by the engine.
//
// Lookups resolve to the most recent rate on or before the requested date.
// Cross-rates via an intermediate currency are not derived implicitly; the
// table must contain a direct entry for every pair actually needed.
type RateTable struct {
	rates map[string][]model.ExchangeRate // pair key -> entries sorted by date ascending
}

// NewRateTable builds a rate table from unordered rate records.
func NewRateTable(rates []model.ExchangeRate) *RateTable {
	t := &RateTable{rates: make(map[string][]model.ExchangeRate)}
	for _, r := range rates {
		key := pairKey(r.FromCurrency, r.ToCurrency)
		entry := r
		entry.Date = dateOnly(r.Date)
		t.rates[key] = append(t.rates[key], entry)
	}
	for key := range t.rates {
		entries := t.rates[key]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Date.Before(entries[j].Date)
		})
		t.rates[key] = entries
	}
	return t
}

// Rate returns the latest rate for (from -> to) with date <= asOf.
// Returns ErrRateNotFound when no eligible entry exists.
func (t *RateTable) Rate(from, to string, asOf time.Time) (float64, error) {
	entries := t.rates[pairKey(from, to)]
	target := dateOnly(asOf)

	// First entry strictly after the target; the one before it is the match.
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].Date.After(target)
	})
	if idx == 0 {
		return 0, fmt.Errorf("%w: %s/%s as of %s",
			apperrors.ErrRateNotFound, from, to, target.Format("2006-01-02"))
	}
	return entries[idx-1].Rate, nil
}

// Normalize converts an amount in the given currency to base-currency terms
// as of a date. Same-currency amounts are returned unchanged without a
// table lookup.
func (t *RateTable) Normalize(amount float64, currency string, asOf time.Time, base string) (float64, error) {
	if currency == base {
		return amount, nil
	}
	rate, err := t.Rate(currency, base, asOf)
	if err != nil {
		return 0, err
	}
	return amount * rate, nil
}

func pairKey(from, to string) string {
	return from + "/" + to
}

// dateOnly truncates to midnight UTC so rate and flow comparisons are
// date-granular regardless of the time component callers pass in.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
