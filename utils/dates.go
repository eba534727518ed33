// utils/dates.go
package utils

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Business days run midnight to midnight at a fixed UTC-3 offset, whatever
// the server timezone is.
const LocalOffsetHours = -3

var (
	LocalZone   = time.FixedZone("UTC-3", LocalOffsetHours*3600)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidPeriod = errors.New("invalid period")
)

const (
	PeriodDay     = "day"
	PeriodWeek    = "week"
	PeriodMonth   = "month"
	PeriodQuarter = "quarter"
	PeriodYear    = "year"
	PeriodCustom  = "custom"
)

// Period is a closed [Start, End] range of UTC instants.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParseDate accepts only YYYY-MM-DD and returns that calendar date at 00:00 UTC.
func ParseDate(value string) (time.Time, error) {
	if !datePattern.MatchString(value) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// LocalDate is the UTC-3 calendar date of t, expressed at 00:00 UTC.
func LocalDate(t time.Time) time.Time {
	y, m, d := t.In(LocalZone).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfDay is local midnight of the given calendar date: 03:00:00.000 UTC.
func StartOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, -LocalOffsetHours, 0, 0, 0, time.UTC)
}

// EndOfDay is the last millisecond before the next local midnight:
// the following date at 02:59:59.999 UTC.
func EndOfDay(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d+1, -LocalOffsetHours-1, 59, 59, int(999*time.Millisecond), time.UTC)
}

// DayPeriod bounds a single local calendar date.
func DayPeriod(date time.Time) Period {
	return Period{Start: StartOfDay(date), End: EndOfDay(date)}
}

// MonthPeriod bounds a whole local calendar month.
func MonthPeriod(year int, month time.Month) Period {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return Period{Start: StartOfDay(first), End: EndOfDay(last)}
}

// ResolvePeriod turns optional YYYY-MM-DD bounds or a period keyword into a
// Period. Explicit dates win over the keyword; with neither, the range is one
// month ago through today.
func ResolvePeriod(startDate, endDate, keyword string, now time.Time) (Period, error) {
	today := LocalDate(now)

	var start, end time.Time
	var err error
	if endDate != "" {
		if end, err = ParseDate(endDate); err != nil {
			return Period{}, fmt.Errorf("endDate: %w", err)
		}
	}
	if startDate != "" {
		if start, err = ParseDate(startDate); err != nil {
			return Period{}, fmt.Errorf("startDate: %w", err)
		}
	}

	if startDate == "" && endDate == "" {
		end = today
		switch keyword {
		case PeriodDay:
			start = today
		case PeriodWeek:
			start = today.AddDate(0, 0, -6)
		case "", PeriodMonth:
			start = today.AddDate(0, -1, 0)
		case PeriodQuarter:
			start = today.AddDate(0, -3, 0)
		case PeriodYear:
			start = today.AddDate(-1, 0, 0)
		case PeriodCustom:
			return Period{}, fmt.Errorf("%w: custom period requires startDate and endDate", ErrInvalidPeriod)
		default:
			return Period{}, fmt.Errorf("%w: unknown period %q", ErrInvalidPeriod, keyword)
		}
	} else {
		if endDate == "" {
			end = today
		}
		if startDate == "" {
			start = end.AddDate(0, -1, 0)
		}
	}

	if start.After(end) {
		return Period{}, fmt.Errorf("%w: startDate is after endDate", ErrInvalidPeriod)
	}
	return Period{Start: StartOfDay(start), End: EndOfDay(end)}, nil
}

// Previous is the same local day-of-month range one calendar month earlier.
// Dates missing from that month roll over the way time.AddDate normalises
// them, so June 1-30 compares with May 1-30 and March 31 with March 3.
func (p Period) Previous() Period {
	start := LocalDate(p.Start).AddDate(0, -1, 0)
	end := LocalDate(p.End).AddDate(0, -1, 0)
	if end.Before(start) {
		end = start
	}
	return Period{Start: StartOfDay(start), End: EndOfDay(end)}
}
