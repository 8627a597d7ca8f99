package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthprice-aggregator/internal/domain"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		page     int
		limit    int
		expected []int
		hasMore  bool
	}{
		{"first page", 1, 3, []int{1, 2, 3}, true},
		{"middle page", 2, 3, []int{4, 5, 6}, true},
		{"last partial page", 3, 3, []int{7}, false},
		{"page past the end", 5, 3, []int{}, false},
		{"limit covers everything", 1, 20, []int{1, 2, 3, 4, 5, 6, 7}, false},
		{"exact fit has no more", 1, 7, []int{1, 2, 3, 4, 5, 6, 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, hasMore := paginate(items, tt.page, tt.limit)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, len(items), total, "total must count the full set, not the page")
			assert.Equal(t, tt.hasMore, hasMore)
		})
	}
}

func TestNormalizeFiltersDefaults(t *testing.T) {
	f := normalizeFilters(domain.SearchFilters{}, "rating", "desc")
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, defaultPageLimit, f.Limit)
	assert.Equal(t, "rating", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)

	f = normalizeFilters(domain.SearchFilters{Page: 3, Limit: 5, SortBy: "name", SortOrder: "asc"}, "rating", "desc")
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 5, f.Limit)
	assert.Equal(t, "name", f.SortBy)
	assert.Equal(t, "asc", f.SortOrder)
}

func TestFilterProviders(t *testing.T) {
	providers := []domain.Provider{
		{
			Name: "High Rated Hospital", Type: "hospital",
			QualityRatings:    domain.QualityRatings{Overall: 4.8},
			AcceptedInsurance: []string{"Aetna", "Cigna"},
			Accreditations:    []domain.Accreditation{{Name: "Hospital Accreditation", Organization: "Joint Commission"}},
		},
		{
			Name: "Low Rated Clinic", Type: "clinic",
			QualityRatings:    domain.QualityRatings{Overall: 3.1},
			AcceptedInsurance: []string{"Medicare"},
		},
	}

	t.Run("by rating", func(t *testing.T) {
		got := filterProviders(providers, domain.SearchFilters{QualityRating: 4.0})
		require.Len(t, got, 1)
		assert.Equal(t, "High Rated Hospital", got[0].Name)
	})

	t.Run("by type", func(t *testing.T) {
		got := filterProviders(providers, domain.SearchFilters{ProviderTypes: []string{"clinic"}})
		require.Len(t, got, 1)
		assert.Equal(t, "Low Rated Clinic", got[0].Name)
	})

	t.Run("by insurance case-insensitive", func(t *testing.T) {
		got := filterProviders(providers, domain.SearchFilters{InsuranceAccepted: []string{"aetna"}})
		require.Len(t, got, 1)
		assert.Equal(t, "High Rated Hospital", got[0].Name)
	})

	t.Run("by accreditation organization", func(t *testing.T) {
		got := filterProviders(providers, domain.SearchFilters{Accreditations: []string{"Joint Commission"}})
		require.Len(t, got, 1)
		assert.Equal(t, "High Rated Hospital", got[0].Name)
	})

	t.Run("no filters keeps everything", func(t *testing.T) {
		assert.Len(t, filterProviders(providers, domain.SearchFilters{}), 2)
	})
}

func TestSortProvidersRatingDesc(t *testing.T) {
	providers := []domain.Provider{
		{Name: "B", QualityRatings: domain.QualityRatings{Overall: 4.1}},
		{Name: "A", QualityRatings: domain.QualityRatings{Overall: 4.8}},
		{Name: "C", QualityRatings: domain.QualityRatings{Overall: 4.5}},
	}

	sortProviders(providers, "rating", "desc")

	assert.Equal(t, "A", providers[0].Name)
	assert.Equal(t, "C", providers[1].Name)
	assert.Equal(t, "B", providers[2].Name)
}

func TestFilterPricesBand(t *testing.T) {
	prices := pricesFromCash(1000, 2500, 5000)

	got := filterPrices(prices, domain.SearchFilters{PriceRange: &domain.PriceBand{Min: 2000, Max: 4000}})
	require.Len(t, got, 1)
	assert.Equal(t, 2500.0, got[0].Pricing.CashPrice)

	got = filterPrices(prices, domain.SearchFilters{PriceRange: &domain.PriceBand{Min: 2000}})
	assert.Len(t, got, 2, "zero max means unbounded above")
}

func TestSortPricesCheapestFirst(t *testing.T) {
	prices := pricesFromCash(5000, 1000, 2500)
	sortPrices(prices, "price", "asc")

	assert.Equal(t, 1000.0, prices[0].Pricing.CashPrice)
	assert.Equal(t, 5000.0, prices[2].Pricing.CashPrice)
}

func TestSortDrugPricesByEffectivePrice(t *testing.T) {
	quotes := []domain.DrugPrice{
		{PharmacyName: "List Only", Price: 90},
		{PharmacyName: "Big Coupon", Price: 150, PriceWithCoupon: 60},
		{PharmacyName: "Small Coupon", Price: 100, PriceWithCoupon: 85},
	}

	sortDrugPrices(quotes)

	assert.Equal(t, "Big Coupon", quotes[0].PharmacyName)
	assert.Equal(t, "Small Coupon", quotes[1].PharmacyName)
	assert.Equal(t, "List Only", quotes[2].PharmacyName)
}
