package sources

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// TourismClient lists medical-tourism destinations with their hospitals and
// procedure pricing. Live integration is pending; listings come from the
// bundled sample set.
type TourismClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewTourismClient creates a medical-tourism directory client.
func NewTourismClient(cfg domain.SourceConfig, logger *logrus.Logger) *TourismClient {
	return &TourismClient{
		baseURL:    cfg.BaseURL,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// Destinations returns destinations offering procedureName, or every
// destination when procedureName is empty.
func (c *TourismClient) Destinations(ctx context.Context, procedureName string) ([]domain.MedicalTourismDestination, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	destinations := sampleDestinations()
	if procedureName != "" {
		needle := strings.ToLower(procedureName)
		var matches []domain.MedicalTourismDestination
		for _, dest := range destinations {
			for _, proc := range dest.PopularProcedures {
				if strings.Contains(strings.ToLower(proc.ProcedureName), needle) {
					matches = append(matches, dest)
					break
				}
			}
		}
		destinations = matches
	}

	c.logger.WithFields(logrus.Fields{
		"procedure": procedureName,
		"results":   len(destinations),
	}).Debug("Tourism destinations fetched")
	return destinations, nil
}
