package apply

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/storecast/storecast/internal/event_bus"
	"github.com/storecast/storecast/internal/utils"
	"github.com/storecast/storecast/pkg/baseline"
	"github.com/storecast/storecast/pkg/forecast"
	"github.com/storecast/storecast/pkg/override"
)

// Failure records one override the tick could not apply.
type Failure struct {
	Date   time.Time
	Reason string
}

// Result summarizes one weekly application tick.
type Result struct {
	Window       forecast.Window
	AppliedCount int
	Failures     []Failure
}

type Service interface {
	// RunWeeklyApplication folds every unapplied override in the upcoming week
	// window into the weekday baseline and marks it applied. Failures are
	// isolated per override; the tick continues with the remaining ones.
	// Running it twice for the same window is a no-op on the second run.
	RunWeeklyApplication(ctx context.Context) (Result, error)
}

type ServiceImpl struct {
	overrideRepo override.OverrideRepo
	baselineSvc  baseline.Service
	clock        utils.Clock
	loc          *time.Location
	weekStart    time.Weekday
	eventBus     *event_bus.EventBus
}

func NewApplyService(
	overrideRepo override.OverrideRepo,
	baselineSvc baseline.Service,
	clock utils.Clock,
	loc *time.Location,
	weekStart time.Weekday,
	eventBus *event_bus.EventBus,
) *ServiceImpl {
	return &ServiceImpl{
		overrideRepo: overrideRepo,
		baselineSvc:  baselineSvc,
		clock:        clock,
		loc:          loc,
		weekStart:    weekStart,
		eventBus:     eventBus,
	}
}

func (s *ServiceImpl) RunWeeklyApplication(ctx context.Context) (Result, error) {
	window := forecast.NextWeekWindow(s.clock.Now(), s.loc, s.weekStart)
	log.Infof("running weekly application for window %s", window)

	overrides, err := s.overrideRepo.GetUnappliedInRange(ctx, window.Start, window.End)
	if err != nil {
		return Result{}, fmt.Errorf("failed to fetch unapplied overrides for %s: %w", window, err)
	}

	result := Result{Window: window}
	// Overrides arrive in ascending date order, so when two dates in the same
	// window share a weekday the later date deterministically wins.
	for _, o := range overrides {
		if err := s.applyOne(ctx, o); err != nil {
			log.Warnf("failed to apply override for %s: %v", utils.FormatDate(o.Date), err)
			result.Failures = append(result.Failures, Failure{Date: o.Date, Reason: err.Error()})
			continue
		}
		result.AppliedCount++
	}

	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.EventApplicationCompleted, event_bus.ApplicationCompleted{
		WindowStart:  window.Start,
		WindowEnd:    window.End,
		AppliedCount: result.AppliedCount,
		FailureCount: len(result.Failures),
	})); err != nil {
		log.Warnf("failed to publish application completed event: %v", err)
	}

	log.Infof("weekly application for %s done: %d applied, %d failed", window, result.AppliedCount, len(result.Failures))
	return result, nil
}

func (s *ServiceImpl) applyOne(ctx context.Context, o override.Override) error {
	day := baseline.DayOfDate(o.Date)
	if _, err := s.baselineSvc.Upsert(ctx, day, o.Amount); err != nil {
		return err
	}
	if err := s.overrideRepo.MarkApplied(ctx, o.Date); err != nil {
		// The baseline write already landed; leaving the override unapplied is
		// safe, the next tick re-applies the same amount.
		return err
	}

	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.EventOverrideApplied, event_bus.OverrideApplied{
		Date:   o.Date,
		Day:    day,
		Amount: o.Amount,
	})); err != nil {
		log.Warnf("failed to publish override applied event: %v", err)
	}
	return nil
}
