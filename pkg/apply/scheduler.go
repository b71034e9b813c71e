package apply

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/storecast/storecast/internal/utils"
	"github.com/storecast/storecast/pkg/forecast"
)

// Scheduler triggers the weekly application once per window, anchored to each
// window's start instant. It is independent of request traffic and can be
// stopped via Stop; an interrupted tick is harmless because already-applied
// overrides stay applied and the rest are picked up on the next tick.
type Scheduler struct {
	service   Service
	clock     utils.Clock
	loc       *time.Location
	weekStart time.Weekday

	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(service Service, clock utils.Clock, loc *time.Location, weekStart time.Weekday) *Scheduler {
	return &Scheduler{
		service:   service,
		clock:     clock,
		loc:       loc,
		weekStart: weekStart,
	}
}

// Start launches the background loop. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for {
			wait := s.nextRunIn(s.clock.Now())
			log.Infof("next weekly application in %s", wait)

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				log.Info("scheduler stopped")
				return
			case <-timer.C:
			}

			if _, err := s.service.RunWeeklyApplication(ctx); err != nil {
				log.Errorf("weekly application tick failed: %v", err)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (s *Scheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
}

// nextRunIn returns how long to sleep until the start of the next window.
// The window always starts strictly after now, so the result is positive and
// each window is processed exactly once per cycle.
func (s *Scheduler) nextRunIn(now time.Time) time.Duration {
	window := forecast.NextWeekWindow(now, s.loc, s.weekStart)
	return window.Start.Sub(now)
}
