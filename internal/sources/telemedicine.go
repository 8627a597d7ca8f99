package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// TelemedicineClient lists virtual-care platforms with their pricing and
// availability. Live integration is pending; listings come from the
// bundled sample set.
type TelemedicineClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewTelemedicineClient creates a telemedicine directory client.
func NewTelemedicineClient(cfg domain.SourceConfig, logger *logrus.Logger) *TelemedicineClient {
	return &TelemedicineClient{
		baseURL:    cfg.BaseURL,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// Providers returns platforms offering the specialty in the given state.
// Empty arguments leave the corresponding dimension unfiltered.
func (c *TelemedicineClient) Providers(ctx context.Context, specialty, state string) ([]domain.TelemedicineProvider, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var matches []domain.TelemedicineProvider
	for _, p := range sampleTelemedicineProviders() {
		if specialty != "" && !containsFold(p.Specialties, specialty) {
			continue
		}
		if state != "" && !containsFold(p.StatesAvailable, "ALL") && !containsFold(p.StatesAvailable, state) {
			continue
		}
		matches = append(matches, p)
	}

	c.logger.WithFields(logrus.Fields{
		"specialty": specialty,
		"state":     state,
		"results":   len(matches),
	}).Debug("Telemedicine directory fetched")
	return matches, nil
}
