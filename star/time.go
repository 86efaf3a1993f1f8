package star

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE KEY - Calendar-day key into the time dimension
// =============================================================================

// DateKey is an ISO calendar date ("2006-01-02"). The format sorts
// lexicographically in chronological order, so DateKeys compare directly
// as strings.
type DateKey string

const dateKeyLayout = "2006-01-02"

// NewDateKey builds a DateKey from a time, discarding the time-of-day part.
func NewDateKey(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// ParseDateKey parses an ISO date string into a DateKey.
func ParseDateKey(s string) (DateKey, error) {
	t, err := time.Parse(dateKeyLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date key %q: %w", s, err)
	}
	return NewDateKey(t), nil
}

// Time returns the key as a UTC midnight time. Zero time for a malformed key.
func (k DateKey) Time() time.Time {
	t, err := time.Parse(dateKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the key n calendar days later (earlier for negative n).
func (k DateKey) AddDays(n int) DateKey {
	return NewDateKey(k.Time().AddDate(0, 0, n))
}

func (k DateKey) Before(other DateKey) bool { return k < other }
func (k DateKey) After(other DateKey) bool  { return k > other }
func (k DateKey) IsZero() bool              { return k == "" }

func (k DateKey) String() string { return string(k) }

// =============================================================================
// TIME DIMENSION
// =============================================================================

// GenerateTimeWindow builds the rolling time dimension: windowDays
// consecutive calendar days ending at (and including) the anchor date,
// in chronological order.
//
// WeekNumber is the week-of-month (ceil(day/7)); FiscalWeek shifts the
// month boundary back three days and zero-pads ("FW02").
func GenerateTimeWindow(anchor time.Time, windowDays int) []TimeRecord {
	records := make([]TimeRecord, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := anchor.AddDate(0, 0, -i)
		wd := day.Weekday()
		records = append(records, TimeRecord{
			DateKey:    NewDateKey(day),
			DayOfWeek:  wd.String(),
			WeekNumber: (day.Day() + 6) / 7,
			Month:      day.Month().String(),
			Year:       day.Year(),
			IsWeekend:  wd == time.Saturday || wd == time.Sunday,
			FiscalWeek: fmt.Sprintf("FW%02d", (day.Day()+3+6)/7),
		})
	}
	return records
}
