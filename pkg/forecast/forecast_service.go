package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/storecast/storecast/internal/utils"
	"github.com/storecast/storecast/pkg/baseline"
	"github.com/storecast/storecast/pkg/override"
)

var ErrInvalidRange = fmt.Errorf("start date must not be after end date")

// ProjectionEntry is the effective projection for one concrete calendar date.
type ProjectionEntry struct {
	Date time.Time
	// Day is the weekday name of Date.
	Day string
	// Amount is the override amount when an override exists for Date,
	// otherwise the derived baseline amount for Day.
	Amount decimal.Decimal
	// IsOverride reports whether a manual override is in effect for Date.
	IsOverride bool
	// BaselineAmount is the derived weekday amount regardless of overrides.
	BaselineAmount decimal.Decimal
}

type Service interface {
	// QueryProjection reports, for each calendar date in [start, end]
	// inclusive, the effective amount together with the plain weekday amount.
	// Read-only: it never mutates either store.
	QueryProjection(ctx context.Context, start time.Time, end time.Time) ([]ProjectionEntry, error)
}

type ServiceImpl struct {
	overrideRepo override.OverrideRepo
	baselineSvc  baseline.Service
	strategy     DerivationStrategy
}

func NewForecastService(overrideRepo override.OverrideRepo, baselineSvc baseline.Service, strategy DerivationStrategy) *ServiceImpl {
	return &ServiceImpl{
		overrideRepo: overrideRepo,
		baselineSvc:  baselineSvc,
		strategy:     strategy,
	}
}

func (s *ServiceImpl) QueryProjection(ctx context.Context, start time.Time, end time.Time) ([]ProjectionEntry, error) {
	start = utils.DateOf(start)
	end = utils.DateOf(end)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	baselines, err := s.baselineSvc.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load baselines: %w", err)
	}
	amounts, err := s.strategy.DeriveAmounts(ctx, baselines)
	if err != nil {
		return nil, fmt.Errorf("failed to derive weekday amounts: %w", err)
	}

	overrides, err := s.overrideRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load overrides: %w", err)
	}
	overrideByDate := make(map[string]override.Override, len(overrides))
	for _, o := range overrides {
		overrideByDate[utils.FormatDate(o.Date)] = o
	}

	entries := make([]ProjectionEntry, 0, 14)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		day := baseline.DayOfDate(date)
		baselineAmount := amounts[day] // zero for days without a baseline slot

		entry := ProjectionEntry{
			Date:           date,
			Day:            day,
			Amount:         baselineAmount,
			BaselineAmount: baselineAmount,
		}
		if o, ok := overrideByDate[utils.FormatDate(date)]; ok {
			entry.Amount = o.Amount
			entry.IsOverride = true
		}
		entries = append(entries, entry)
	}

	log.Debugf("projection for [%s, %s]: %d entries", utils.FormatDate(start), utils.FormatDate(end), len(entries))
	return entries, nil
}
