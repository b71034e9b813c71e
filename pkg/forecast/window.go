package forecast

import (
	"fmt"
	"time"

	"github.com/storecast/storecast/internal/utils"
)

// Window is the contiguous 7-calendar-day span, in store-local time, holding
// the next upcoming week eligible for override application. Both boundaries
// are inclusive: Start is local midnight of the first day, End is 23:59:59.999
// of the last.
type Window struct {
	Start time.Time
	End   time.Time
}

// NextWeekWindow computes the window for the week that begins on the next
// occurrence of weekStart strictly after now's calendar date in loc. All
// arithmetic happens on local calendar dates, so a DST transition inside the
// window cannot shift its date boundaries; the window spans exactly 7 calendar
// days regardless of any clock shift.
func NextWeekWindow(now time.Time, loc *time.Location, weekStart time.Weekday) Window {
	today := utils.DateOf(now.In(loc))
	tomorrow := today.AddDate(0, 0, 1)

	// Advance to the next weekStart, inclusive of tomorrow.
	delta := (int(weekStart) - int(tomorrow.Weekday()) + 7) % 7
	start := tomorrow.AddDate(0, 0, delta)

	return Window{
		Start: start,
		End:   utils.EndOfDay(start.AddDate(0, 0, 6)),
	}
}

// Contains reports whether date's calendar day falls inside the window.
func (w Window) Contains(date time.Time) bool {
	d := utils.FormatDate(date.In(w.Start.Location()))
	return d >= utils.FormatDate(w.Start) && d <= utils.FormatDate(w.End)
}

// Days returns the seven local midnights of the window in order.
func (w Window) Days() []time.Time {
	days := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		days = append(days, w.Start.AddDate(0, 0, i))
	}
	return days
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s]", utils.FormatDate(w.Start), utils.FormatDate(w.End))
}
