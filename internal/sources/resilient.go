package sources

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/healthprice-aggregator/internal/domain"
)

func newBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"source": name,
				"from":   from.String(),
				"to":     to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})
}

// BreakerPriceSource wraps a price source with a circuit breaker so a
// flapping upstream stops receiving traffic while the rest of the fan-out
// continues.
type BreakerPriceSource struct {
	inner   domain.PriceSource
	breaker *gobreaker.CircuitBreaker
}

// WithPriceBreaker wraps source in a circuit breaker.
func WithPriceBreaker(source domain.PriceSource, logger *logrus.Logger) *BreakerPriceSource {
	return &BreakerPriceSource{
		inner:   source,
		breaker: newBreaker(source.Name(), logger),
	}
}

func (s *BreakerPriceSource) Name() string { return s.inner.Name() }

func (s *BreakerPriceSource) ProcedurePrices(ctx context.Context, procedureCode string, filters domain.SearchFilters) ([]domain.ProcedurePrice, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.inner.ProcedurePrices(ctx, procedureCode, filters)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.ProcedurePrice), nil
}

// BreakerPharmacySource wraps a pharmacy quote source with a circuit
// breaker.
type BreakerPharmacySource struct {
	inner   domain.PharmacyPriceSource
	breaker *gobreaker.CircuitBreaker
}

// WithPharmacyBreaker wraps source in a circuit breaker.
func WithPharmacyBreaker(source domain.PharmacyPriceSource, logger *logrus.Logger) *BreakerPharmacySource {
	return &BreakerPharmacySource{
		inner:   source,
		breaker: newBreaker(source.Name(), logger),
	}
}

func (s *BreakerPharmacySource) Name() string { return s.inner.Name() }

func (s *BreakerPharmacySource) DrugPrices(ctx context.Context, drugID, zipCode string) ([]domain.DrugPrice, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.inner.DrugPrices(ctx, drugID, zipCode)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.DrugPrice), nil
}
