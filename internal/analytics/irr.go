package analytics

import (
	"math"

	"github.com/wealthos/wealth-os-backend/internal/apperrors"
)

// Solver parameters. Day count is ACT/365 fixed; elapsed time for each flow
// is whole days from the first flow divided by 365.
const (
	irrSeed          = 0.1
	irrMaxIterations = 100
	irrTolerance     = 1e-6 // |NPV| in base-currency units
	irrLowerBound    = -0.9999
	irrUpperBound    = 10.0
	daysPerYear      = 365.0
)

// IRR finds the annualized rate r such that the net present value of the
// series is zero: sum(flow_i / (1+r)^(days_i/365)) = 0.
//
// Newton-Raphson from a 0.1 seed converges in a handful of iterations on
// well-behaved series; when the derivative flattens or the iteration
// escapes the valid domain, the solver falls back to bisection over
// [-0.9999, 10.0]. A series with fewer than two flows, or with all flows
// of one sign, has no defined IRR and returns ErrInsufficientCashFlows.
// Exhausting the iteration cap returns ErrIRRNotConverged rather than a
// misleading value.
func IRR(flows []CashFlow) (float64, error) {
	if len(flows) < 2 {
		return 0, apperrors.ErrInsufficientCashFlows
	}
	if !hasMixedSigns(flows) {
		return 0, apperrors.ErrInsufficientCashFlows
	}

	first := flows[0].Date
	years := make([]float64, len(flows))
	amounts := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = f.Date.Sub(first).Hours() / 24.0 / daysPerYear
		amounts[i] = f.Amount
	}

	npv := func(r float64) float64 {
		total := 0.0
		for i, a := range amounts {
			total += a / math.Pow(1.0+r, years[i])
		}
		return total
	}
	// d/dr of a*(1+r)^-t is -a*t*(1+r)^(-t-1)
	derivative := func(r float64) float64 {
		total := 0.0
		for i, a := range amounts {
			total -= a * years[i] * math.Pow(1.0+r, -years[i]-1.0)
		}
		return total
	}

	if rate, ok := newton(npv, derivative); ok {
		return rate, nil
	}
	return bisect(npv)
}

// newton runs the Newton-Raphson iteration. It reports ok=false whenever
// the derivative-based step becomes unreliable (flat derivative, NaN, or a
// step outside the valid rate domain) so the caller can fall back to the
// bounded bisection.
func newton(npv, derivative func(float64) float64) (float64, bool) {
	r := irrSeed
	for i := 0; i < irrMaxIterations; i++ {
		v := npv(r)
		if math.Abs(v) < irrTolerance {
			return r, true
		}
		d := derivative(r)
		if math.Abs(d) < 1e-12 {
			return 0, false
		}
		next := r - v/d
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= irrLowerBound || next > irrUpperBound {
			return 0, false
		}
		r = next
	}
	return 0, false
}

// bisect searches [irrLowerBound, irrUpperBound] for the NPV root. The NPV
// of a mixed-sign series is monotone enough over this bracket for the
// standard halving to converge; without a sign change there is no root in
// range and the computation is reported as non-convergent.
func bisect(npv func(float64) float64) (float64, error) {
	lo, hi := irrLowerBound, irrUpperBound
	vLo, vHi := npv(lo), npv(hi)
	if math.Abs(vLo) < irrTolerance {
		return lo, nil
	}
	if math.Abs(vHi) < irrTolerance {
		return hi, nil
	}
	if vLo*vHi > 0 {
		return 0, apperrors.ErrIRRNotConverged
	}

	for i := 0; i < irrMaxIterations; i++ {
		mid := (lo + hi) / 2
		vMid := npv(mid)
		if math.Abs(vMid) < irrTolerance {
			return mid, nil
		}
		if vLo*vMid < 0 {
			hi = mid
		} else {
			lo, vLo = mid, vMid
		}
	}
	return 0, apperrors.ErrIRRNotConverged
}

func hasMixedSigns(flows []CashFlow) bool {
	hasPositive, hasNegative := false, false
	for _, f := range flows {
		if f.Amount > 0 {
			hasPositive = true
		}
		if f.Amount < 0 {
			hasNegative = true
		}
	}
	return hasPositive && hasNegative
}
