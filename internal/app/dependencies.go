package app

import (
	"database/sql"
	"time"

	"github.com/storecast/storecast/internal/config"
	"github.com/storecast/storecast/internal/event_bus"
	"github.com/storecast/storecast/internal/utils"
	"github.com/storecast/storecast/pkg/apply"
	"github.com/storecast/storecast/pkg/baseline"
	"github.com/storecast/storecast/pkg/distribution"
	"github.com/storecast/storecast/pkg/forecast"
	"github.com/storecast/storecast/pkg/override"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	OverrideRepo    override.OverrideRepo
	OverrideService *override.ServiceImpl
	OverrideHandler *override.OverrideHandler

	BaselineRepo    baseline.BaselineRepo
	BaselineService *baseline.ServiceImpl
	BaselineHandler *baseline.BaselineHandler

	DistributionRepo    distribution.DistributionRepo
	DistributionService *distribution.ServiceImpl
	DistributionHandler *distribution.DistributionHandler

	ForecastService *forecast.ServiceImpl
	ForecastHandler *forecast.ForecastHandler

	ApplyService *apply.ServiceImpl
	ApplyHandler *apply.ApplyHandler
	Scheduler    *apply.Scheduler

	EventBus *event_bus.EventBus
	Clock    utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application, loc *time.Location) *Dependencies {
	deps := &Dependencies{}
	weekStart := cfg.Store.WeekStart()

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.OverrideRepo = override.NewOverrideRepo(db, loc)
	deps.OverrideService = override.NewOverrideService(deps.OverrideRepo)
	deps.OverrideHandler = override.NewOverrideHandler(deps.OverrideService, loc)

	deps.BaselineRepo = baseline.NewBaselineRepo(db)
	deps.BaselineService = baseline.NewBaselineService(deps.BaselineRepo)
	deps.BaselineHandler = baseline.NewBaselineHandler(deps.BaselineService)

	deps.DistributionRepo = distribution.NewDistributionRepo(db)
	deps.DistributionService = distribution.NewDistributionService(deps.DistributionRepo)
	deps.DistributionHandler = distribution.NewDistributionHandler(deps.DistributionService)

	var strategy forecast.DerivationStrategy
	if cfg.Forecast.Derivation == "weighted" {
		strategy = forecast.NewWeightedStrategy(deps.DistributionRepo)
	} else {
		strategy = forecast.NewBaselineStrategy()
	}
	deps.ForecastService = forecast.NewForecastService(deps.OverrideRepo, deps.BaselineService, strategy)
	deps.ForecastHandler = forecast.NewForecastHandler(deps.ForecastService, loc)

	deps.ApplyService = apply.NewApplyService(deps.OverrideRepo, deps.BaselineService, deps.Clock, loc, weekStart, deps.EventBus)
	deps.ApplyHandler = apply.NewApplyHandler(deps.ApplyService)
	deps.Scheduler = apply.NewScheduler(deps.ApplyService, deps.Clock, loc, weekStart)

	event_bus.SubscribeTyped[event_bus.OverrideApplied](
		deps.EventBus,
		event_bus.EventOverrideApplied,
		func(e event_bus.EventT[event_bus.OverrideApplied]) error {
			log.Infof("override for %s applied to %s baseline (%s)", e.Data.Date.Format("2006-01-02"), e.Data.Day, e.Data.Amount)
			return nil
		},
	)

	return deps
}
