package apply

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storecast/storecast/internal/event_bus"
	"github.com/storecast/storecast/internal/utils"
	"github.com/storecast/storecast/pkg/baseline"
	"github.com/storecast/storecast/pkg/override"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

type fixture struct {
	overrides *override.StubOverrideRepo
	baselines *baseline.StubBaselineRepo
	baseSvc   baseline.Service
	clock     *utils.MockClock
	bus       *event_bus.EventBus
	service   Service
}

func setup(t *testing.T, now time.Time) *fixture {
	t.Helper()
	f := &fixture{
		overrides: override.NewStubOverrideRepo(),
		baselines: baseline.NewStubBaselineRepo(),
		clock:     &utils.MockClock{FixedNow: now},
		bus:       event_bus.NewEventBus(),
	}
	f.baseSvc = baseline.NewBaselineService(f.baselines)
	f.service = NewApplyService(f.overrides, f.baseSvc, f.clock, time.UTC, time.Sunday, f.bus)
	return f
}

func putOverride(t *testing.T, f *fixture, date string, amount int64) {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	require.NoError(t, f.overrides.Put(ctx, override.Override{Date: d, Amount: decimal.NewFromInt(amount)}))
}

func baselineAmount(t *testing.T, f *fixture, day string) decimal.Decimal {
	t.Helper()
	b, err := f.baseSvc.Get(ctx, day)
	require.NoError(t, err)
	return b.Amount
}

func TestServiceImpl_RunWeeklyApplication(t *testing.T) {
	// now = 2024-06-04, a Tuesday; upcoming window = [2024-06-09, 2024-06-15]
	now := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)

	t.Run("should fold an in-window override into the weekday baseline", func(t *testing.T) {
		// given
		f := setup(t, now)
		_, err := f.baseSvc.Upsert(ctx, "Monday", decimal.NewFromInt(1000))
		require.NoError(t, err)
		putOverride(t, f, "2024-06-10", 1500) // next Monday

		// when
		result, err := f.service.RunWeeklyApplication(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, result.AppliedCount)
		assert.Empty(t, result.Failures)
		assert.True(t, baselineAmount(t, f, "Monday").Equal(decimal.NewFromInt(1500)))

		overrides, err := f.overrides.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, overrides, 1)
		assert.True(t, overrides[0].Applied)
	})

	t.Run("should be idempotent across repeated runs", func(t *testing.T) {
		// given
		f := setup(t, now)
		putOverride(t, f, "2024-06-10", 1500)

		// when
		first, err := f.service.RunWeeklyApplication(ctx)
		require.NoError(t, err)
		second, err := f.service.RunWeeklyApplication(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, first.AppliedCount)
		assert.Equal(t, 0, second.AppliedCount)
		assert.Empty(t, second.Failures)
		assert.True(t, baselineAmount(t, f, "Monday").Equal(decimal.NewFromInt(1500)))
	})

	t.Run("should ignore overrides outside the window", func(t *testing.T) {
		// given
		f := setup(t, now)
		putOverride(t, f, "2024-06-08", 700) // Saturday before the window
		putOverride(t, f, "2024-06-16", 900) // Sunday after the window

		// when
		result, err := f.service.RunWeeklyApplication(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 0, result.AppliedCount)
		for _, o := range mustGetAll(t, f) {
			assert.False(t, o.Applied)
		}
	})

	t.Run("should isolate a failure and continue with remaining overrides", func(t *testing.T) {
		// given an override on Sunday, a day with no baseline slot
		f := setup(t, now)
		putOverride(t, f, "2024-06-09", 500)  // Sunday, fails weekday validation
		putOverride(t, f, "2024-06-10", 1500) // Monday

		// when
		result, err := f.service.RunWeeklyApplication(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, result.AppliedCount)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "2024-06-09", result.Failures[0].Date.Format("2006-01-02"))
		assert.Contains(t, result.Failures[0].Reason, "unknown weekday name")
		assert.True(t, baselineAmount(t, f, "Monday").Equal(decimal.NewFromInt(1500)))
	})

	t.Run("should leave a failed override unapplied for the next tick", func(t *testing.T) {
		// given
		f := setup(t, now)
		f.baselines.FailingDays["Tuesday"] = errors.New("store unavailable")
		putOverride(t, f, "2024-06-10", 1500) // Monday
		putOverride(t, f, "2024-06-11", 1600) // Tuesday, baseline write fails

		// when
		result, err := f.service.RunWeeklyApplication(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, result.AppliedCount)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "2024-06-11", result.Failures[0].Date.Format("2006-01-02"))

		// and a retry after the store recovers applies the remainder
		delete(f.baselines.FailingDays, "Tuesday")
		retry, err := f.service.RunWeeklyApplication(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, retry.AppliedCount)
		assert.True(t, baselineAmount(t, f, "Tuesday").Equal(decimal.NewFromInt(1600)))
	})

	t.Run("should publish an event per applied override", func(t *testing.T) {
		// given
		f := setup(t, now)
		putOverride(t, f, "2024-06-10", 1500)
		putOverride(t, f, "2024-06-12", 1800)

		applied := make([]string, 0, 2)
		event_bus.SubscribeTyped[event_bus.OverrideApplied](
			f.bus,
			event_bus.EventOverrideApplied,
			func(e event_bus.EventT[event_bus.OverrideApplied]) error {
				applied = append(applied, e.Data.Day)
				return nil
			},
		)

		// when
		_, err := f.service.RunWeeklyApplication(ctx)

		// then
		assert.NoError(t, err)
		assert.Equal(t, []string{"Monday", "Wednesday"}, applied)
	})

	t.Run("should run the reference scenario end to end", func(t *testing.T) {
		// given baselines of 1000 for all six days, an override for 2024-06-10
		// (a Monday) created while now = 2024-06-03
		f := setup(t, time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC))
		for _, day := range baseline.SalesDays {
			_, err := f.baseSvc.Upsert(ctx, day, decimal.NewFromInt(1000))
			require.NoError(t, err)
		}
		putOverride(t, f, "2024-06-10", 2000)

		// when the application runs at now = 2024-06-04
		f.clock.SetNow(time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC))
		result, err := f.service.RunWeeklyApplication(ctx)

		// then the window is [2024-06-09, 2024-06-15] and Monday becomes 2000
		assert.NoError(t, err)
		assert.Equal(t, "[2024-06-09, 2024-06-15]", result.Window.String())
		assert.Equal(t, 1, result.AppliedCount)
		assert.True(t, baselineAmount(t, f, "Monday").Equal(decimal.NewFromInt(2000)))
		assert.True(t, baselineAmount(t, f, "Tuesday").Equal(decimal.NewFromInt(1000)))

		overrides := mustGetAll(t, f)
		require.Len(t, overrides, 1)
		assert.True(t, overrides[0].Applied)
	})
}

func mustGetAll(t *testing.T, f *fixture) []override.Override {
	t.Helper()
	overrides, err := f.overrides.GetAll(ctx)
	require.NoError(t, err)
	return overrides
}
