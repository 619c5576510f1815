package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2023, time.March, 17, 13, 45, 0, 0, time.UTC))
	require.Equal(t, date(2023, time.March, 1), got)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain", date(2023, time.January, 10), 1, date(2023, time.February, 10)},
		{"clamp to february", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"clamp leap year", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"year rollover", date(2023, time.December, 15), 1, date(2024, time.January, 15)},
		{"backwards", date(2023, time.January, 10), -1, date(2022, time.December, 10)},
		{"backwards clamp", date(2023, time.March, 31), -1, date(2023, time.February, 28)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestAddMonths_KeepsClock(t *testing.T) {
	in := time.Date(2023, time.June, 15, 12, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2023, time.July, 15, 12, 30, 0, 0, time.UTC), AddMonths(in, 1))
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 0, DaysBetween(date(2023, 1, 10), date(2023, 1, 10)))
	require.Equal(t, 59, DaysBetween(date(2023, 1, 10), date(2023, 3, 10)))
	require.Equal(t, -31, DaysBetween(date(2023, 1, 1), date(2022, 12, 1)))

	// partial days truncate
	require.Equal(t, 0, DaysBetween(date(2023, 1, 10), date(2023, 1, 10).Add(23*time.Hour)))
	require.Equal(t, 134, DaysBetween(date(2023, 2, 1), time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)))
	require.Equal(t, 0, DaysBetween(date(2023, 1, 10).Add(500*time.Millisecond), date(2023, 1, 11).Add(200*time.Millisecond)))
	require.Equal(t, 1, DaysBetween(date(2023, 1, 10).Add(200*time.Millisecond), date(2023, 1, 11).Add(500*time.Millisecond)))
	require.Equal(t, 0, DaysBetween(date(2023, 1, 11).Add(200*time.Millisecond), date(2023, 1, 10).Add(500*time.Millisecond)))
}

func TestDaysBetween_LongSpans(t *testing.T) {
	// 719162 days from 0001-01-01 to the Unix epoch, 19358 more to 2023.
	require.Equal(t, 738520, DaysBetween(date(1, 1, 1), date(2023, 1, 1)))
	require.Equal(t, -738520, DaysBetween(date(2023, 1, 1), date(1, 1, 1)))
}

func TestTickLabel(t *testing.T) {
	require.Equal(t, "Dec 22", TickLabel(date(2022, time.December, 1)))
	require.Equal(t, "Jan 2, 2023", DisplayLabel(date(2023, time.January, 2)))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2023-02-01")
	require.NoError(t, err)
	require.Equal(t, date(2023, 2, 1), got)

	got, err = ParseDate("2023-02-01T10:00:00+02:00")
	require.NoError(t, err)
	require.Equal(t, time.Date(2023, 2, 1, 8, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("01/02/2023")
	require.Error(t, err)
}
