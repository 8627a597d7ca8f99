package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// CMSPriceClient reads hospital price-transparency files published under
// the CMS disclosure rules. Live integration is pending; prices come from
// the bundled sample set.
type CMSPriceClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewCMSPriceClient creates a CMS transparency-file client.
func NewCMSPriceClient(cfg domain.SourceConfig, logger *logrus.Logger) *CMSPriceClient {
	return &CMSPriceClient{
		baseURL:    cfg.BaseURL,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

func (c *CMSPriceClient) Name() string { return "cms" }

// ProcedurePrices returns per-provider prices for procedureCode.
func (c *CMSPriceClient) ProcedurePrices(ctx context.Context, procedureCode string, filters domain.SearchFilters) ([]domain.ProcedurePrice, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	prices := sampleProcedurePrices("cms", procedureCode, 85, govSource("CMS Price Transparency", "https://data.cms.gov/"))
	c.logger.WithFields(logrus.Fields{
		"procedure_code": procedureCode,
		"results":        len(prices),
	}).Debug("CMS transparency prices fetched")
	return prices, nil
}
