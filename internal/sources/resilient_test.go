package sources

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthprice-aggregator/internal/domain"
)

type flakyPriceSource struct {
	err   error
	calls int
}

func (f *flakyPriceSource) Name() string { return "flaky" }

func (f *flakyPriceSource) ProcedurePrices(ctx context.Context, code string, filters domain.SearchFilters) ([]domain.ProcedurePrice, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []domain.ProcedurePrice{{ProcedureCode: code}}, nil
}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &flakyPriceSource{}
	wrapped := WithPriceBreaker(inner, discardLogger())

	prices, err := wrapped.ProcedurePrices(context.Background(), "27447", domain.SearchFilters{})
	require.NoError(t, err)
	assert.Len(t, prices, 1)
	assert.Equal(t, "flaky", wrapped.Name())
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyPriceSource{err: errors.New("upstream down")}
	wrapped := WithPriceBreaker(inner, discardLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := wrapped.ProcedurePrices(ctx, "27447", domain.SearchFilters{})
		require.Error(t, err)
	}

	_, err := wrapped.ProcedurePrices(ctx, "27447", domain.SearchFilters{})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, inner.calls, "open breaker should stop calling the source")
}
