package presence

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"

	// SecondsPerDay is used to fold arbitrary second counts onto a wall clock.
	SecondsPerDay = 24 * 60 * 60
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay builds a TimeOfDay from its components.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// ParseTimeOfDay parses an HH:MM:SS string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}

// FromSeconds converts a second count into a wall-clock time the way a
// calendar conversion of a timestamp would: fractions are floored and the
// result wraps around midnight in both directions.
func FromSeconds(seconds float64) TimeOfDay {
	s := int64(math.Floor(seconds)) % SecondsPerDay
	if s < 0 {
		s += SecondsPerDay
	}
	return TimeOfDay{
		Hour:   int(s / 3600),
		Minute: int(s % 3600 / 60),
		Second: int(s % 60),
	}
}

// Triple returns the time as [hour, minute, second].
func (t TimeOfDay) Triple() [3]int {
	return [3]int{t.Hour, t.Minute, t.Second}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// MarshalJSON encodes the time as [h, m, s].
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Triple())
}

// Date is a calendar date. It is comparable and safe to use as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return dateOf(t), nil
}

// dateOf returns the calendar date of t in t's location.
func dateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the weekday index with Monday as 0 and Sunday as 6.
func (d Date) Weekday() int {
	return (int(d.Time().Weekday()) + 6) % DaysInWeek
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// WeekdayAbbrev returns the English three-letter name of a weekday index.
func WeekdayAbbrev(weekday int) string {
	return weekdayAbbrevs[weekday]
}

var weekdayAbbrevs = [DaysInWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
