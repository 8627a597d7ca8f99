package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// TrialsClient searches the ClinicalTrials.gov registry. Live integration
// is pending; results come from the bundled sample set.
type TrialsClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewTrialsClient creates a clinical-trials registry client.
func NewTrialsClient(cfg domain.SourceConfig, logger *logrus.Logger) *TrialsClient {
	return &TrialsClient{
		baseURL:    cfg.BaseURL,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// Search returns trials for the condition, narrowed by status and phase
// when those filters are set.
func (c *TrialsClient) Search(ctx context.Context, condition string, filters domain.TrialFilters) ([]domain.ClinicalTrial, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var matches []domain.ClinicalTrial
	for _, trial := range sampleClinicalTrials(condition) {
		if len(filters.Status) > 0 && !containsFold(filters.Status, trial.Status) {
			continue
		}
		if len(filters.Phase) > 0 && !containsFold(filters.Phase, trial.Phase) {
			continue
		}
		matches = append(matches, trial)
	}

	c.logger.WithFields(logrus.Fields{
		"condition": condition,
		"results":   len(matches),
	}).Debug("Clinical trial search completed")
	return matches, nil
}
