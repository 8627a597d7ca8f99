package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// EmergencyFeedClient reads hospital capacity feeds for live ER wait times
// and urgent-care listings. Live integration is pending; data comes from
// the bundled sample set.
type EmergencyFeedClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewEmergencyFeedClient creates an emergency feed client.
func NewEmergencyFeedClient(cfg domain.SourceConfig, logger *logrus.Logger) *EmergencyFeedClient {
	return &EmergencyFeedClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// ERWaitTimes returns emergency rooms within radiusMiles of the point.
func (c *EmergencyFeedClient) ERWaitTimes(ctx context.Context, lat, lng, radiusMiles float64) ([]domain.EmergencyRoom, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	rooms := sampleEmergencyRooms()
	c.logger.WithFields(logrus.Fields{
		"lat":     lat,
		"lng":     lng,
		"radius":  radiusMiles,
		"results": len(rooms),
	}).Debug("ER wait times fetched")
	return rooms, nil
}

// UrgentCareFacilities returns urgent-care centers within radiusMiles of
// the point.
func (c *EmergencyFeedClient) UrgentCareFacilities(ctx context.Context, lat, lng, radiusMiles float64) ([]domain.UrgentCare, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	facilities := sampleUrgentCare()
	c.logger.WithFields(logrus.Fields{
		"lat":     lat,
		"lng":     lng,
		"radius":  radiusMiles,
		"results": len(facilities),
	}).Debug("Urgent care facilities fetched")
	return facilities, nil
}
