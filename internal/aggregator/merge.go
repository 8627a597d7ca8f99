package aggregator

import "github.com/healthprice-aggregator/internal/domain"

// mergeProviderQuality left-joins quality ratings (keyed by NPI) onto the
// base provider list. Providers absent from the quality map keep their
// original ratings.
func mergeProviderQuality(base []domain.Provider, quality map[string]domain.QualityRatings) []domain.Provider {
	merged := make([]domain.Provider, len(base))
	for i, provider := range base {
		if ratings, ok := quality[provider.NPI]; ok {
			provider.QualityRatings = ratings
		}
		merged[i] = provider
	}
	return merged
}

// priceKey identifies a price record for merging.
type priceKey struct {
	providerID    string
	procedureCode string
}

// mergePrices combines price records from multiple sources, keeping exactly
// one record per (providerId, procedureCode): the one with the strictly
// highest confidence score. On equal scores the first-seen record wins, so
// source order is significant for ties. Output preserves first-seen key
// order.
func mergePrices(sources ...[]domain.ProcedurePrice) []domain.ProcedurePrice {
	winners := make(map[priceKey]domain.ProcedurePrice)
	order := make([]priceKey, 0)

	for _, source := range sources {
		for _, price := range source {
			key := priceKey{providerID: price.ProviderID, procedureCode: price.ProcedureCode}
			existing, ok := winners[key]
			if !ok {
				winners[key] = price
				order = append(order, key)
				continue
			}
			if price.ConfidenceScore > existing.ConfidenceScore {
				winners[key] = price
			}
		}
	}

	merged := make([]domain.ProcedurePrice, 0, len(order))
	for _, key := range order {
		merged = append(merged, winners[key])
	}
	return merged
}
