package distribution

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/storecast/storecast/pkg/baseline"
)

type StubDistributionRepo struct {
	data map[string]decimal.Decimal
}

func NewStubDistributionRepo() *StubDistributionRepo {
	return &StubDistributionRepo{data: map[string]decimal.Decimal{}}
}

func (s *StubDistributionRepo) Upsert(ctx context.Context, day string, percent decimal.Decimal) error {
	s.data[day] = percent
	return nil
}

func (s *StubDistributionRepo) GetAll(ctx context.Context) ([]DayWeight, error) {
	weights := make([]DayWeight, 0, len(s.data))
	for _, day := range baseline.SalesDays {
		if percent, ok := s.data[day]; ok {
			weights = append(weights, DayWeight{Day: day, Percent: percent})
		}
	}
	return weights, nil
}

func (s *StubDistributionRepo) Cleanup() {
	s.data = map[string]decimal.Decimal{}
}
