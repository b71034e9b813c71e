package override

import (
	"time"

	"github.com/shopspring/decimal"
)

// Override pins one calendar date to a manually entered sales amount. At most
// one override exists per date; rewriting a date replaces the previous entry.
type Override struct {
	// Date is the calendar date the override applies to, at local midnight.
	Date time.Time
	// Amount is the operator-entered sales amount for that date.
	Amount decimal.Decimal
	// Applied indicates whether the weekly application has already folded
	// this amount into the weekday baseline.
	Applied bool
}
