package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthprice-aggregator/internal/domain"
)

func price(provider, code string, confidence int, cash float64) domain.ProcedurePrice {
	return domain.ProcedurePrice{
		ID:              provider + "-" + code,
		ProviderID:      provider,
		ProcedureCode:   code,
		ConfidenceScore: confidence,
		Pricing:         domain.PricingDetails{CashPrice: cash},
	}
}

func TestMergePricesOneWinnerPerKey(t *testing.T) {
	a := []domain.ProcedurePrice{
		price("prov-1", "27447", 85, 33500),
		price("prov-2", "27447", 88, 34250),
	}
	b := []domain.ProcedurePrice{
		price("prov-1", "27447", 92, 31000), // higher confidence, replaces
		price("prov-3", "27447", 80, 36000),
	}

	merged := mergePrices(a, b)

	require.Len(t, merged, 3)
	byProvider := make(map[string]domain.ProcedurePrice)
	for _, p := range merged {
		byProvider[p.ProviderID] = p
	}
	assert.Equal(t, 92, byProvider["prov-1"].ConfidenceScore)
	assert.Equal(t, 31000.0, byProvider["prov-1"].Pricing.CashPrice)
	assert.Equal(t, 88, byProvider["prov-2"].ConfidenceScore)
	assert.Equal(t, 80, byProvider["prov-3"].ConfidenceScore)
}

func TestMergePricesTieKeepsFirstSeen(t *testing.T) {
	first := price("prov-1", "27447", 85, 30000)
	second := price("prov-1", "27447", 85, 40000)

	merged := mergePrices([]domain.ProcedurePrice{first}, []domain.ProcedurePrice{second})

	require.Len(t, merged, 1)
	assert.Equal(t, 30000.0, merged[0].Pricing.CashPrice, "equal confidence should keep the first-seen record")
}

func TestMergePricesDistinguishesProcedureCodes(t *testing.T) {
	merged := mergePrices([]domain.ProcedurePrice{
		price("prov-1", "27447", 85, 30000),
		price("prov-1", "45378", 85, 2500),
	})

	assert.Len(t, merged, 2, "same provider with different codes should not collapse")
}

func TestMergePricesPreservesFirstSeenOrder(t *testing.T) {
	merged := mergePrices([]domain.ProcedurePrice{
		price("prov-2", "27447", 70, 1),
		price("prov-1", "27447", 70, 2),
	}, []domain.ProcedurePrice{
		price("prov-1", "27447", 99, 3),
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "prov-2", merged[0].ProviderID)
	assert.Equal(t, "prov-1", merged[1].ProviderID)
	assert.Equal(t, 99, merged[1].ConfidenceScore)
}

func TestMergeProviderQuality(t *testing.T) {
	base := []domain.Provider{
		{NPI: "111", QualityRatings: domain.QualityRatings{Overall: 3.0}},
		{NPI: "222", QualityRatings: domain.QualityRatings{Overall: 4.0}},
	}
	quality := map[string]domain.QualityRatings{
		"111": {Overall: 4.8, LeapfrogGrade: "A"},
	}

	merged := mergeProviderQuality(base, quality)

	require.Len(t, merged, 2)
	assert.Equal(t, 4.8, merged[0].QualityRatings.Overall)
	assert.Equal(t, "A", merged[0].QualityRatings.LeapfrogGrade)
	assert.Equal(t, 4.0, merged[1].QualityRatings.Overall, "providers without ratings keep their own")
}
