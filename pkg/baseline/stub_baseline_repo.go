package baseline

import (
	"context"

	"github.com/shopspring/decimal"
)

type StubBaselineRepo struct {
	data map[string]decimal.Decimal
	// FailingDays makes Upsert fail for specific days to exercise partial failures.
	FailingDays map[string]error
}

func NewStubBaselineRepo() *StubBaselineRepo {
	return &StubBaselineRepo{
		data:        map[string]decimal.Decimal{},
		FailingDays: map[string]error{},
	}
}

func (s *StubBaselineRepo) Upsert(ctx context.Context, day string, amount decimal.Decimal) error {
	if err, ok := s.FailingDays[day]; ok {
		return err
	}
	s.data[day] = amount
	return nil
}

func (s *StubBaselineRepo) Get(ctx context.Context, day string) (decimal.Decimal, bool, error) {
	amount, ok := s.data[day]
	return amount, ok, nil
}

func (s *StubBaselineRepo) GetAll(ctx context.Context) ([]Baseline, error) {
	baselines := make([]Baseline, 0, len(s.data))
	for _, day := range SalesDays {
		if amount, ok := s.data[day]; ok {
			baselines = append(baselines, Baseline{Day: day, Amount: amount})
		}
	}
	return baselines, nil
}

func (s *StubBaselineRepo) Cleanup() {
	s.data = map[string]decimal.Decimal{}
	s.FailingDays = map[string]error{}
}
