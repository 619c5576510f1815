package dateutil

import "time"

const (
	TickLabelLayout    = "Jan 06"
	DisplayLabelLayout = "Jan 2, 2006"
	DateLayout         = "2006-01-02"
)

func MonthStart(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddMonths moves t by n calendar months. The day of month is clamped to the
// last day of the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	target := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(target.Year(), target.Month(), t.Location()); d > last {
		d = last
	}
	return target.AddDate(0, 0, d-1)
}

// DaysBetween returns the number of whole days from a to b. Partial days are
// truncated toward zero, so the result is negative when b is before a.
//
// The count works on Unix seconds rather than time.Duration, which saturates
// for spans longer than about 292 years.
func DaysBetween(a, b time.Time) int {
	secs := b.Unix() - a.Unix()
	nanos := b.Nanosecond() - a.Nanosecond()
	switch {
	case secs > 0 && nanos < 0:
		secs--
	case secs < 0 && nanos > 0:
		secs++
	}
	return int(secs / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// Later returns the later of a and b.
func Later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func TickLabel(t time.Time) string {
	return t.Format(TickLabelLayout)
}

func DisplayLabel(t time.Time) string {
	return t.Format(DisplayLabelLayout)
}

// ParseDate accepts a bare calendar date or a full RFC 3339 timestamp and
// returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
