package analytics

import (
	"math"
	"sort"

	"github.com/wealthos/wealth-os-backend/internal/model"
)

// AllocationLine compares actual versus target weight for one asset class.
// Deviation and weights are fractions of total portfolio value.
type AllocationLine struct {
	AssetClass     model.AssetClass `json:"assetClass"`
	TargetWeight   float64          `json:"targetWeight"`
	ActualWeight   float64          `json:"actualWeight"`
	Deviation      float64          `json:"deviation"`
	DeviationValue float64          `json:"deviationValue"`
}

// RebalanceSuggestion is an actionable deviation from target allocation.
type RebalanceSuggestion struct {
	AssetClass model.AssetClass `json:"assetClass"`
	Action     string           `json:"action"` // "reduce" or "add"
	Amount     float64          `json:"amount"`
	Deviation  float64          `json:"deviation"`
	Priority   string           `json:"priority"` // "high" or "medium"
}

// CompareAllocation reports actual vs target weight for every asset class
// named in the target map.
func CompareAllocation(snap model.PortfolioSnapshot, target map[model.AssetClass]float64) []AllocationLine {
	actual := map[model.AssetClass]float64{}
	if snap.TotalValue > 0 {
		for _, h := range snap.Holdings {
			actual[h.AssetClass] += h.ValueBase / snap.TotalValue
		}
	}

	lines := make([]AllocationLine, 0, len(target))
	for _, ac := range model.AllAssetClasses() {
		targetWeight, ok := target[ac]
		if !ok {
			continue
		}
		deviation := actual[ac] - targetWeight
		lines = append(lines, AllocationLine{
			AssetClass:     ac,
			TargetWeight:   targetWeight,
			ActualWeight:   actual[ac],
			Deviation:      deviation,
			DeviationValue: deviation * snap.TotalValue,
		})
	}
	return lines
}

// RebalancingSuggestions turns allocation deviations at or above the
// threshold into reduce/add actions. Deviations at twice the threshold are
// high priority; suggestions are ordered by priority, then magnitude.
func RebalancingSuggestions(lines []AllocationLine, threshold float64) []RebalanceSuggestion {
	var suggestions []RebalanceSuggestion
	for _, line := range lines {
		if math.Abs(line.Deviation) < threshold {
			continue
		}
		action := "add"
		if line.Deviation > 0 {
			action = "reduce"
		}
		priority := "medium"
		if math.Abs(line.Deviation) >= threshold*2 {
			priority = "high"
		}
		suggestions = append(suggestions, RebalanceSuggestion{
			AssetClass: line.AssetClass,
			Action:     action,
			Amount:     math.Abs(line.DeviationValue),
			Deviation:  line.Deviation,
			Priority:   priority,
		})
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority == "high"
		}
		return math.Abs(suggestions[i].Deviation) > math.Abs(suggestions[j].Deviation)
	})
	return suggestions
}
