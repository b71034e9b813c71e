package baseline

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrUnknownDay = fmt.Errorf("unknown weekday name")
var ErrInvalidAmount = fmt.Errorf("amount must not be negative")

type Service interface {
	// Upsert creates or overwrites the baseline amount for a weekday name.
	Upsert(ctx context.Context, day string, amount decimal.Decimal) (Baseline, error)
	// BulkUpsert writes several weekday amounts in one call. Validation happens
	// up front so a bad entry rejects the whole batch before any write.
	BulkUpsert(ctx context.Context, entries []Baseline) ([]Baseline, error)
	// Get returns the baseline for a weekday name, zero if never set.
	Get(ctx context.Context, day string) (Baseline, error)
	// ListAll returns all six baselines in Monday..Saturday order, zero-filled
	// for days that have never been written.
	ListAll(ctx context.Context) ([]Baseline, error)
}

type ServiceImpl struct {
	repo BaselineRepo
}

func NewBaselineService(repo BaselineRepo) *ServiceImpl {
	return &ServiceImpl{repo}
}

func (s *ServiceImpl) Upsert(ctx context.Context, day string, amount decimal.Decimal) (Baseline, error) {
	if !IsSalesDay(day) {
		return Baseline{}, fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}
	if amount.IsNegative() {
		return Baseline{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if err := s.repo.Upsert(ctx, day, amount); err != nil {
		return Baseline{}, fmt.Errorf("failed to store baseline: %w", err)
	}
	return Baseline{Day: day, Amount: amount}, nil
}

func (s *ServiceImpl) BulkUpsert(ctx context.Context, entries []Baseline) ([]Baseline, error) {
	for _, e := range entries {
		if !IsSalesDay(e.Day) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDay, e.Day)
		}
		if e.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, e.Amount)
		}
	}
	for _, e := range entries {
		if err := s.repo.Upsert(ctx, e.Day, e.Amount); err != nil {
			return nil, fmt.Errorf("failed to store baseline for %s: %w", e.Day, err)
		}
	}
	return s.ListAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, day string) (Baseline, error) {
	if !IsSalesDay(day) {
		return Baseline{}, fmt.Errorf("%w: %q", ErrUnknownDay, day)
	}
	amount, found, err := s.repo.Get(ctx, day)
	if err != nil {
		return Baseline{}, fmt.Errorf("failed to get baseline: %w", err)
	}
	if !found {
		return Baseline{Day: day, Amount: decimal.Zero}, nil
	}
	return Baseline{Day: day, Amount: amount}, nil
}

func (s *ServiceImpl) ListAll(ctx context.Context) ([]Baseline, error) {
	stored, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list baselines: %w", err)
	}
	byDay := make(map[string]decimal.Decimal, len(stored))
	for _, b := range stored {
		byDay[b.Day] = b.Amount
	}

	baselines := make([]Baseline, 0, len(SalesDays))
	for _, day := range SalesDays {
		amount, ok := byDay[day]
		if !ok {
			amount = decimal.Zero
		}
		baselines = append(baselines, Baseline{Day: day, Amount: amount})
	}
	return baselines, nil
}
