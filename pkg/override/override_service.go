package override

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storecast/storecast/internal/utils"
)

var ErrNotFound = fmt.Errorf("override not found")
var ErrInvalidAmount = fmt.Errorf("amount must not be negative")
var ErrInvalidDate = fmt.Errorf("invalid override date")

type Service interface {
	// Put creates or replaces the override for date. The previous entry, if
	// any, is discarded and the applied flag is reset to false.
	Put(ctx context.Context, date time.Time, amount decimal.Decimal) (Override, error)
	// Delete removes the override for date, or ErrNotFound.
	Delete(ctx context.Context, date time.Time) error
	// ListAll returns all overrides, applied or not, ordered by date ascending.
	ListAll(ctx context.Context) ([]Override, error)
}

type ServiceImpl struct {
	repo OverrideRepo
}

func NewOverrideService(repo OverrideRepo) *ServiceImpl {
	return &ServiceImpl{repo}
}

func (s *ServiceImpl) Put(ctx context.Context, date time.Time, amount decimal.Decimal) (Override, error) {
	if date.IsZero() {
		return Override{}, ErrInvalidDate
	}
	if amount.IsNegative() {
		return Override{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}

	override := Override{Date: utils.DateOf(date), Amount: amount, Applied: false}
	if err := s.repo.Put(ctx, override); err != nil {
		return Override{}, fmt.Errorf("failed to store override: %w", err)
	}
	return override, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, date time.Time) error {
	deleted, err := s.repo.Delete(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, utils.FormatDate(date))
	}
	return nil
}

func (s *ServiceImpl) ListAll(ctx context.Context) ([]Override, error) {
	overrides, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	return overrides, nil
}
