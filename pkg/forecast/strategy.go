package forecast

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/storecast/storecast/pkg/baseline"
	"github.com/storecast/storecast/pkg/distribution"
)

// DerivationStrategy turns the six stored weekday baselines into the per-day
// amounts reported by the projection query. The default strategy reports the
// baselines as-is; the weighted strategy redistributes the weekly total
// according to the stored day weights.
type DerivationStrategy interface {
	DeriveAmounts(ctx context.Context, baselines []baseline.Baseline) (map[string]decimal.Decimal, error)
}

type BaselineStrategy struct{}

func NewBaselineStrategy() *BaselineStrategy {
	return &BaselineStrategy{}
}

func (s *BaselineStrategy) DeriveAmounts(ctx context.Context, baselines []baseline.Baseline) (map[string]decimal.Decimal, error) {
	amounts := make(map[string]decimal.Decimal, len(baselines))
	for _, b := range baselines {
		amounts[b.Day] = b.Amount
	}
	return amounts, nil
}

type WeightedStrategy struct {
	weights distribution.DistributionRepo
}

func NewWeightedStrategy(weights distribution.DistributionRepo) *WeightedStrategy {
	return &WeightedStrategy{weights: weights}
}

// DeriveAmounts scales the weekly baseline total by each day's percent share.
// With no weights stored it falls back to the plain baselines.
func (s *WeightedStrategy) DeriveAmounts(ctx context.Context, baselines []baseline.Baseline) (map[string]decimal.Decimal, error) {
	weights, err := s.weights.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load day weights: %w", err)
	}
	if len(weights) == 0 {
		log.Debug("no day weights configured, deriving from plain baselines")
		return NewBaselineStrategy().DeriveAmounts(ctx, baselines)
	}

	total := decimal.Zero
	for _, b := range baselines {
		total = total.Add(b.Amount)
	}

	hundred := decimal.NewFromInt(100)
	amounts := make(map[string]decimal.Decimal, len(baselines))
	for _, b := range baselines {
		amounts[b.Day] = b.Amount
	}
	for _, w := range weights {
		amounts[w.Day] = total.Mul(w.Percent).Div(hundred).Round(2)
	}
	return amounts, nil
}
