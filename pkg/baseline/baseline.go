package baseline

import (
	"time"

	"github.com/shopspring/decimal"
)

// Baseline is the standing sales projection for one weekday. The store is
// closed on Sundays, so exactly six baselines exist: Monday through Saturday.
type Baseline struct {
	// Day is the weekday name, e.g. "Monday".
	Day string
	// Amount is the projected sales for that weekday.
	Amount decimal.Decimal
}

// SalesDays are the weekday names with a baseline slot, in display order.
var SalesDays = []string{
	time.Monday.String(),
	time.Tuesday.String(),
	time.Wednesday.String(),
	time.Thursday.String(),
	time.Friday.String(),
	time.Saturday.String(),
}

// IsSalesDay reports whether day is one of the six recognized weekday names.
func IsSalesDay(day string) bool {
	for _, d := range SalesDays {
		if d == day {
			return true
		}
	}
	return false
}

// DayOfDate derives the weekday name for a calendar date.
func DayOfDate(date time.Time) string {
	return date.Weekday().String()
}
