package aggregator

import (
	"math"
	"sort"

	"github.com/healthprice-aggregator/internal/domain"
)

// nationalAverage is the rounded arithmetic mean of cash prices, or 0 for
// an empty set.
func nationalAverage(prices []domain.ProcedurePrice) float64 {
	if len(prices) == 0 {
		return 0
	}
	var sum float64
	for _, p := range prices {
		sum += p.Pricing.CashPrice
	}
	return math.Round(sum / float64(len(prices)))
}

// regionalAverage is not state-partitioned yet; it falls back to the
// national mean regardless of state.
func regionalAverage(prices []domain.ProcedurePrice, state string) float64 {
	return nationalAverage(prices)
}

// computePriceRange reports nearest-rank statistics over the cash prices:
// the median is the element at floor(n/2) of the ascending sort, the
// quartiles the elements at floor(n/4) and floor(3n/4). All fields are 0
// for an empty set; for a single price all five fields equal it.
func computePriceRange(prices []domain.ProcedurePrice) domain.PriceRange {
	if len(prices) == 0 {
		return domain.PriceRange{}
	}

	sorted := make([]float64, len(prices))
	for i, p := range prices {
		sorted[i] = p.Pricing.CashPrice
	}
	sort.Float64s(sorted)

	n := len(sorted)
	return domain.PriceRange{
		Min:          sorted[0],
		Max:          sorted[n-1],
		Median:       sorted[n/2],
		Percentile25: sorted[n/4],
		Percentile75: sorted[3*n/4],
	}
}
