package sources

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/healthprice-aggregator/internal/domain"
)

// PharmacyClient queries one prescription discount program for per-pharmacy
// drug quotes. The programs share an API shape, so one client type covers
// GoodRx, RxSaver, and Blink Health; they differ in the coupon discount
// they negotiate. Live integration is pending; quotes come from the
// bundled sample set.
type PharmacyClient struct {
	name           string
	couponProvider string
	discount       float64
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	limiter        *rate.Limiter
	logger         *logrus.Logger
}

// NewGoodRxClient creates a GoodRx discount client.
func NewGoodRxClient(cfg domain.SourceConfig, logger *logrus.Logger) *PharmacyClient {
	return newPharmacyClient("goodrx", "GoodRx", 0.45, cfg, logger)
}

// NewRxSaverClient creates an RxSaver discount client.
func NewRxSaverClient(cfg domain.SourceConfig, logger *logrus.Logger) *PharmacyClient {
	return newPharmacyClient("rxsaver", "RxSaver", 0.40, cfg, logger)
}

// NewBlinkHealthClient creates a Blink Health discount client.
func NewBlinkHealthClient(cfg domain.SourceConfig, logger *logrus.Logger) *PharmacyClient {
	return newPharmacyClient("blink_health", "Blink Health", 0.35, cfg, logger)
}

func newPharmacyClient(name, couponProvider string, discount float64, cfg domain.SourceConfig, logger *logrus.Logger) *PharmacyClient {
	return &PharmacyClient{
		name:           name,
		couponProvider: couponProvider,
		discount:       discount,
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		httpClient:     newHTTPClient(cfg),
		limiter:        newLimiter(cfg),
		logger:         logger,
	}
}

func (c *PharmacyClient) Name() string { return c.name }

// DrugPrices returns per-pharmacy quotes for drugID near zipCode.
func (c *PharmacyClient) DrugPrices(ctx context.Context, drugID, zipCode string) ([]domain.DrugPrice, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	quotes := sampleDrugPrices(drugID, zipCode, c.couponProvider, c.discount)
	c.logger.WithFields(logrus.Fields{
		"source":  c.name,
		"drug_id": drugID,
		"results": len(quotes),
	}).Debug("Pharmacy quotes fetched")
	return quotes, nil
}
