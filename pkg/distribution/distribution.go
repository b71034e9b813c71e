package distribution

import (
	"github.com/shopspring/decimal"
)

// DayWeight assigns one weekday a percentage share of the weekly sales total.
// The weight set is stored and editable by the operator; it is only consumed
// when the projection query is configured with the weighted derivation
// strategy, never by the override application engine.
type DayWeight struct {
	// Day is the weekday name, e.g. "Monday".
	Day string
	// Percent is the day's share of the weekly total, 0..100.
	Percent decimal.Decimal
}
