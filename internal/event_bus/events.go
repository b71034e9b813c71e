package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOverrideApplied      EventType = "forecast.override.applied"
	EventApplicationCompleted EventType = "forecast.application.completed"
)

// OverrideApplied is published once per override folded into the baseline.
type OverrideApplied struct {
	Date   time.Time
	Day    string
	Amount decimal.Decimal
}

// ApplicationCompleted summarizes one weekly application tick.
type ApplicationCompleted struct {
	WindowStart  time.Time
	WindowEnd    time.Time
	AppliedCount int
	FailureCount int
}
