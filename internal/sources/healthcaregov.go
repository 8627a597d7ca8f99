package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// MarketplaceClient queries the Healthcare.gov marketplace API for plans
// available in a state. Live integration is pending; plans come from the
// bundled sample set.
type MarketplaceClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewMarketplaceClient creates a Healthcare.gov marketplace client.
func NewMarketplaceClient(cfg domain.SourceConfig, logger *logrus.Logger) *MarketplaceClient {
	return &MarketplaceClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// Plans returns marketplace plans sold in the state, narrowed by the plan
// filters.
func (c *MarketplaceClient) Plans(ctx context.Context, state string, filters domain.InsurancePlanFilters) ([]domain.InsurancePlan, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var matches []domain.InsurancePlan
	for _, plan := range sampleInsurancePlans(state) {
		if len(filters.PlanTypes) > 0 && !containsFold(filters.PlanTypes, plan.PlanType) {
			continue
		}
		if len(filters.MetalLevels) > 0 && !containsFold(filters.MetalLevels, plan.MetalLevel) {
			continue
		}
		if filters.MaxPremium > 0 && plan.Premium.Individual > filters.MaxPremium {
			continue
		}
		matches = append(matches, plan)
	}

	c.logger.WithFields(logrus.Fields{
		"state":   state,
		"results": len(matches),
	}).Debug("Marketplace plans fetched")
	return matches, nil
}
