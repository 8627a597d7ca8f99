package sources

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/healthprice-aggregator/internal/domain"
)

// UserReportedPrices surfaces prices submitted by patients from their
// bills. The submission pipeline is not populated yet, so the source
// currently contributes nothing to the merge.
type UserReportedPrices struct {
	logger *logrus.Logger
}

// NewUserReportedPrices creates the user-submission price source.
func NewUserReportedPrices(logger *logrus.Logger) *UserReportedPrices {
	return &UserReportedPrices{logger: logger}
}

func (s *UserReportedPrices) Name() string { return "user_reported" }

// ProcedurePrices returns user-submitted prices for procedureCode.
func (s *UserReportedPrices) ProcedurePrices(ctx context.Context, procedureCode string, filters domain.SearchFilters) ([]domain.ProcedurePrice, error) {
	s.logger.WithField("procedure_code", procedureCode).Debug("No user-reported prices available")
	return nil, nil
}
