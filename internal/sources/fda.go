package sources

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// FDAClient searches the FDA National Drug Code directory. Live integration
// is pending; results come from the bundled sample set.
type FDAClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewFDAClient creates an FDA NDC directory client.
func NewFDAClient(cfg domain.SourceConfig, logger *logrus.Logger) *FDAClient {
	return &FDAClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// SearchDrugs returns drugs whose brand or generic name matches query.
func (c *FDAClient) SearchDrugs(ctx context.Context, query string) ([]domain.Drug, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	var matches []domain.Drug
	for _, drug := range sampleDrugs() {
		if strings.Contains(strings.ToLower(drug.Name), needle) ||
			strings.Contains(strings.ToLower(drug.GenericName), needle) {
			matches = append(matches, drug)
		}
	}

	c.logger.WithFields(logrus.Fields{
		"query":   query,
		"results": len(matches),
	}).Debug("Drug catalog search completed")
	return matches, nil
}
