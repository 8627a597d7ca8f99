package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// FairHealthClient queries the FAIR Health claims-derived price benchmark.
// Live integration is pending; prices come from the bundled sample set,
// seeded with lower confidence than the government transparency files so
// the merge prefers CMS records when both report the same provider.
type FairHealthClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewFairHealthClient creates a FAIR Health client.
func NewFairHealthClient(cfg domain.SourceConfig, logger *logrus.Logger) *FairHealthClient {
	return &FairHealthClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

func (c *FairHealthClient) Name() string { return "fairhealth" }

// ProcedurePrices returns per-provider prices for procedureCode.
func (c *FairHealthClient) ProcedurePrices(ctx context.Context, procedureCode string, filters domain.SearchFilters) ([]domain.ProcedurePrice, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	prices := sampleProcedurePrices("fairhealth", procedureCode, 78, commercialSource("FAIR Health"))
	c.logger.WithFields(logrus.Fields{
		"procedure_code": procedureCode,
		"results":        len(prices),
	}).Debug("FAIR Health prices fetched")
	return prices, nil
}
