package distribution

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/storecast/storecast/pkg/baseline"
)

var ErrUnknownDay = fmt.Errorf("unknown weekday name")
var ErrInvalidPercent = fmt.Errorf("percent must be between 0 and 100")

var hundred = decimal.NewFromInt(100)

type Service interface {
	// BulkUpsert replaces the stored weights for the given days. Validation
	// happens up front so a bad entry rejects the whole batch before any write.
	BulkUpsert(ctx context.Context, weights []DayWeight) ([]DayWeight, error)
	// ListAll returns the stored weights in Monday..Saturday order. Days with
	// no stored weight are omitted.
	ListAll(ctx context.Context) ([]DayWeight, error)
}

type ServiceImpl struct {
	repo DistributionRepo
}

func NewDistributionService(repo DistributionRepo) *ServiceImpl {
	return &ServiceImpl{repo}
}

func (s *ServiceImpl) BulkUpsert(ctx context.Context, weights []DayWeight) ([]DayWeight, error) {
	for _, w := range weights {
		if !baseline.IsSalesDay(w.Day) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDay, w.Day)
		}
		if w.Percent.IsNegative() || w.Percent.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidPercent, w.Percent)
		}
	}
	for _, w := range weights {
		if err := s.repo.Upsert(ctx, w.Day, w.Percent); err != nil {
			return nil, fmt.Errorf("failed to store day weight for %s: %w", w.Day, err)
		}
	}
	return s.ListAll(ctx)
}

func (s *ServiceImpl) ListAll(ctx context.Context) ([]DayWeight, error) {
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list day weights: %w", err)
	}
	byDay := make(map[string]decimal.Decimal, len(stored))
	for _, w := range stored {
		byDay[w.Day] = w.Percent
	}

	weights := make([]DayWeight, 0, len(stored))
	for _, day := range baseline.SalesDays {
		if percent, ok := byDay[day]; ok {
			weights = append(weights, DayWeight{Day: day, Percent: percent})
		}
	}
	return weights, nil
}
