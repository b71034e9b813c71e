package override

import (
	"context"
	"sort"
	"time"

	"github.com/storecast/storecast/internal/utils"
)

type StubOverrideRepo struct {
	data map[string]Override
}

func NewStubOverrideRepo() *StubOverrideRepo {
	return &StubOverrideRepo{data: map[string]Override{}}
}

func (s *StubOverrideRepo) Put(ctx context.Context, override Override) error {
	override.Applied = false
	s.data[utils.FormatDate(override.Date)] = override
	return nil
}

func (s *StubOverrideRepo) Delete(ctx context.Context, date time.Time) (bool, error) {
	key := utils.FormatDate(date)
	_, ok := s.data[key]
	delete(s.data, key)
	return ok, nil
}

func (s *StubOverrideRepo) GetAll(ctx context.Context) ([]Override, error) {
	overrides := make([]Override, 0, len(s.data))
	for _, override := range s.data {
		overrides = append(overrides, override)
	}
	sort.Slice(overrides, func(i, j int) bool {
		return overrides[i].Date.Before(overrides[j].Date)
	})
	return overrides, nil
}

func (s *StubOverrideRepo) GetByDate(ctx context.Context, date time.Time) (*Override, error) {
	if override, ok := s.data[utils.FormatDate(date)]; ok {
		return &override, nil
	}
	return nil, nil
}

func (s *StubOverrideRepo) GetUnappliedInRange(ctx context.Context, start time.Time, end time.Time) ([]Override, error) {
	startKey := utils.FormatDate(start)
	endKey := utils.FormatDate(end)
	overrides := make([]Override, 0, len(s.data))
	for key, override := range s.data {
		if !override.Applied && key >= startKey && key <= endKey {
			overrides = append(overrides, override)
		}
	}
	sort.Slice(overrides, func(i, j int) bool {
		return overrides[i].Date.Before(overrides[j].Date)
	})
	return overrides, nil
}

func (s *StubOverrideRepo) MarkApplied(ctx context.Context, date time.Time) error {
	key := utils.FormatDate(date)
	if override, ok := s.data[key]; ok {
		override.Applied = true
		s.data[key] = override
	}
	return nil
}

func (s *StubOverrideRepo) Cleanup() {
	s.data = map[string]Override{}
}
