package core

import (
	"fmt"
	"time"
)

const monthKeyLayout = "2006-01"

// MonthKey identifies a calendar month (YYYY-MM). Named events are anchored
// to months, and projection steps are indexed by the months they cover.
type MonthKey string

func NewMonthKey(year, month int) MonthKey {
	return MonthKey(fmt.Sprintf("%04d-%02d", year, month))
}

func MonthKeyOf(t time.Time) MonthKey {
	return NewMonthKey(t.Year(), int(t.Month()))
}

func ParseMonthKey(s string) (MonthKey, error) {
	// time.Parse accepts unpadded months; the wire format is strict.
	if len(s) != len(monthKeyLayout) {
		return "", ErrInvalidMonth
	}
	t, err := time.Parse(monthKeyLayout, s)
	if err != nil {
		return "", ErrInvalidMonth
	}
	return MonthKeyOf(t), nil
}

// Time returns the first instant of the month in UTC.
func (k MonthKey) Time() time.Time {
	t, err := time.Parse(monthKeyLayout, string(k))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (k MonthKey) AddMonths(n int) MonthKey {
	return MonthKeyOf(k.Time().AddDate(0, n, 0))
}

func (k MonthKey) Before(o MonthKey) bool {
	return string(k) < string(o)
}

// MonthSpan counts calendar months between two dates, inclusive of both
// endpoints. Same-month dates span 1.
func MonthSpan(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

// WholeMonthsBetween returns the number of whole months from a to b,
// negative when b precedes a. A partial month does not count: Jan 15 to
// Feb 14 is 0 months, Jan 15 to Feb 15 is 1.
func WholeMonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}
