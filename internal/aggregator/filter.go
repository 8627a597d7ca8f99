package aggregator

import (
	"sort"
	"strings"

	"github.com/healthprice-aggregator/internal/domain"
)

const defaultPageLimit = 20

// normalizeFilters fills paging and sort defaults so cache keys for
// equivalent queries match.
func normalizeFilters(filters domain.SearchFilters, defaultSortBy, defaultSortOrder string) domain.SearchFilters {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = defaultPageLimit
	}
	if filters.SortBy == "" {
		filters.SortBy = defaultSortBy
	}
	if filters.SortOrder == "" {
		filters.SortOrder = defaultSortOrder
	}
	return filters
}

func filterProviders(providers []domain.Provider, filters domain.SearchFilters) []domain.Provider {
	out := make([]domain.Provider, 0, len(providers))
	for _, p := range providers {
		if filters.QualityRating > 0 && p.QualityRatings.Overall < filters.QualityRating {
			continue
		}
		if len(filters.ProviderTypes) > 0 && !containsFold(filters.ProviderTypes, p.Type) {
			continue
		}
		if len(filters.InsuranceAccepted) > 0 && !intersectsFold(p.AcceptedInsurance, filters.InsuranceAccepted) {
			continue
		}
		if len(filters.Accreditations) > 0 && !hasAccreditation(p.Accreditations, filters.Accreditations) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortProviders orders providers in place. Rating is the default axis;
// unknown sortBy values also fall back to rating. Stable so equal keys keep
// source order.
func sortProviders(providers []domain.Provider, sortBy, sortOrder string) {
	var less func(a, b domain.Provider) bool
	switch sortBy {
	case "name":
		less = func(a, b domain.Provider) bool { return a.Name < b.Name }
	default:
		less = func(a, b domain.Provider) bool { return a.QualityRatings.Overall < b.QualityRatings.Overall }
	}
	sort.SliceStable(providers, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(providers[j], providers[i])
		}
		return less(providers[i], providers[j])
	})
}

func filterPrices(prices []domain.ProcedurePrice, filters domain.SearchFilters) []domain.ProcedurePrice {
	if filters.PriceRange == nil {
		return prices
	}
	band := filters.PriceRange
	out := make([]domain.ProcedurePrice, 0, len(prices))
	for _, p := range prices {
		if p.Pricing.CashPrice < band.Min {
			continue
		}
		if band.Max > 0 && p.Pricing.CashPrice > band.Max {
			continue
		}
		out = append(out, p)
	}
	return out
}

// sortPrices orders prices in place, cheapest-first by default.
func sortPrices(prices []domain.ProcedurePrice, sortBy, sortOrder string) {
	var less func(a, b domain.ProcedurePrice) bool
	switch sortBy {
	case "confidence":
		less = func(a, b domain.ProcedurePrice) bool { return a.ConfidenceScore < b.ConfidenceScore }
	default:
		less = func(a, b domain.ProcedurePrice) bool { return a.Pricing.CashPrice < b.Pricing.CashPrice }
	}
	sort.SliceStable(prices, func(i, j int) bool {
		if sortOrder == "desc" {
			return less(prices[j], prices[i])
		}
		return less(prices[i], prices[j])
	})
}

// sortDrugPrices orders quotes by what the patient would actually pay,
// cheapest first.
func sortDrugPrices(quotes []domain.DrugPrice) {
	sort.SliceStable(quotes, func(i, j int) bool {
		return quotes[i].EffectivePrice() < quotes[j].EffectivePrice()
	})
}

// paginate slices one page out of items. Total counts the full filtered set,
// and hasMore holds exactly when pages beyond this one exist.
func paginate[T any](items []T, page, limit int) (pageItems []T, total int, hasMore bool) {
	total = len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], total, total > page*limit
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}
	return false
}

func intersectsFold(a, b []string) bool {
	for _, s := range a {
		if containsFold(b, s) {
			return true
		}
	}
	return false
}

// hasAccreditation matches wanted names against both the accreditation name
// and the issuing organization.
func hasAccreditation(held []domain.Accreditation, wanted []string) bool {
	for _, acc := range held {
		if containsFold(wanted, acc.Name) || containsFold(wanted, acc.Organization) {
			return true
		}
	}
	return false
}
