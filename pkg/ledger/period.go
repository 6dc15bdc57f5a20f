package ledger

import (
	"fmt"
	"time"
)

// Named periods accepted by Resolve. Any other value must be an
// explicit "YYYY-MM-DD" calendar day.
const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodAll   = "all"
)

// dayFormat is the layout for explicit calendar-day periods.
const dayFormat = "2006-01-02"

// Window is a half-open time range [Start, End). A nil bound is
// unbounded on that side.
type Window struct {
	Start *time.Time
	End   *time.Time
}

// Query returns a ledger query filtering on the window.
func (w Window) Query() *Query {
	return &Query{Start: w.Start, End: w.End}
}

// Resolve computes the time window for a period name relative to now,
// in now's location.
//
// Window conventions (pinned):
//   - "today" is the current calendar day.
//   - "week" is the rolling 7 days ending now, not the calendar week.
//   - "month" is the current calendar month.
//   - "all" is unbounded.
//   - "YYYY-MM-DD" is that calendar day.
//
// Unrecognized periods return an error.
func Resolve(period string, now time.Time) (Window, error) {
	loc := now.Location()

	switch period {
	case PeriodToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		end := start.AddDate(0, 0, 1)
		return Window{Start: &start, End: &end}, nil

	case PeriodWeek:
		start := now.AddDate(0, 0, -7)
		return Window{Start: &start}, nil

	case PeriodMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 1, 0)
		return Window{Start: &start, End: &end}, nil

	case PeriodAll:
		return Window{}, nil
	}

	day, err := time.ParseInLocation(dayFormat, period, loc)
	if err != nil {
		return Window{}, fmt.Errorf("unknown period %q: want today, week, month, all, or YYYY-MM-DD", period)
	}
	end := day.AddDate(0, 0, 1)
	return Window{Start: &day, End: &end}, nil
}
