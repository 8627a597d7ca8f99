package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

const nightlyRate = 100

// TravelClient prices the travel legs of a medical-tourism trip using
// flight and hotel aggregators plus a cost-of-living index. Live
// integration is pending; quotes come from the bundled sample set.
type TravelClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewTravelClient creates a travel-cost client.
func NewTravelClient(cfg domain.SourceConfig, logger *logrus.Logger) *TravelClient {
	return &TravelClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: newHTTPClient(cfg),
		limiter:    newLimiter(cfg),
		logger:     logger,
	}
}

// TravelInfo returns flight and on-the-ground travel figures for the
// destination city.
func (c *TravelClient) TravelInfo(ctx context.Context, originCountry, destCountry, destCity string) (*domain.TravelInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	info := sampleTravelInfo(destCity)
	return &info, nil
}

// CostOfLiving returns the cost-of-living profile for a city.
func (c *TravelClient) CostOfLiving(ctx context.Context, city, country string) (*domain.CostOfLivingData, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	col := sampleCostOfLiving(city)
	return &col, nil
}

// FlightPrices returns the round-trip fare range between two locations.
func (c *TravelClient) FlightPrices(ctx context.Context, origin, destination string) (*domain.PriceRange, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fares := sampleFlightPrices()
	c.logger.WithFields(logrus.Fields{
		"origin":      origin,
		"destination": destination,
	}).Debug("Flight prices fetched")
	return &fares, nil
}

// AccommodationCost returns the total lodging cost for a stay of the given
// length.
func (c *TravelClient) AccommodationCost(ctx context.Context, city string, nights int) (float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}
	return nightlyRate * float64(nights), nil
}
