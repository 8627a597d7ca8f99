package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// NPIClient queries the NPPES NPI registry, the authoritative directory of
// US healthcare providers. Live integration is pending; responses come from
// the bundled sample set.
type NPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewNPIClient creates an NPI registry client.
func NewNPIClient(cfg domain.SourceConfig, logger *logrus.Logger) *NPIClient {
	return &NPIClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// Search returns providers matching the filters. A query that is exactly a
// known NPI narrows the result to that provider; any other query returns
// the full directory slice and leaves narrowing to the aggregator's
// filtering stage.
func (c *NPIClient) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Provider, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	providers := sampleProviders()
	if filters.Query != "" {
		for _, p := range providers {
			if p.NPI == filters.Query {
				providers = []domain.Provider{p}
				break
			}
		}
	}

	c.logger.WithFields(logrus.Fields{
		"query":   filters.Query,
		"results": len(providers),
	}).Debug("NPI registry search completed")
	return providers, nil
}
