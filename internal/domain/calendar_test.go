package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.Local)
}

func TestClassifyDay(t *testing.T) {
	holidays := NewHolidaySet([]string{"2025-03-10", "2025-03-15", "2025-03-16", " "})

	tests := []struct {
		name string
		date time.Time
		want DayType
	}{
		{"weekday", date(2025, 3, 11), DayWeekday},
		{"saturday", date(2025, 3, 8), DaySaturday},
		{"sunday", date(2025, 3, 9), DaySunday},
		{"holiday on monday", date(2025, 3, 10), DayHoliday},
		{"holiday beats saturday", date(2025, 3, 15), DayHoliday},
		{"holiday beats sunday", date(2025, 3, 16), DayHoliday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDay(tt.date, holidays))
		})
	}
}

func TestIsBookingWindowOpen(t *testing.T) {
	today := date(2025, 3, 11)

	assert.True(t, IsBookingWindowOpen(today, at(2025, 3, 11, 15)))
	assert.False(t, IsBookingWindowOpen(today, at(2025, 3, 11, 16)))
	assert.False(t, IsBookingWindowOpen(today, at(2025, 3, 11, 23)))
	// other days never get an hour cutoff
	assert.True(t, IsBookingWindowOpen(date(2025, 3, 12), at(2025, 3, 11, 23)))
	assert.True(t, IsBookingWindowOpen(date(2025, 3, 10), at(2025, 3, 11, 23)))
}

func TestOpenPeriodsForToday(t *testing.T) {
	tests := []struct {
		hour int
		want []Period
	}{
		{8, []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}},
		{10, []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}},
		{11, []Period{PeriodAfternoon, PeriodEvening}},
		{15, []Period{PeriodAfternoon, PeriodEvening}},
		{16, []Period{}},
		{20, []Period{}},
	}

	for _, tt := range tests {
		got := OpenPeriodsForToday(at(2025, 3, 11, tt.hour))
		assert.Equal(t, tt.want, got, "hour %d", tt.hour)
	}
}

func TestBookablePeriods(t *testing.T) {
	now := at(2025, 3, 11, 12)

	assert.Equal(t, []Period{PeriodAfternoon, PeriodEvening}, BookablePeriods(date(2025, 3, 11), now))
	assert.Equal(t, AllPeriods, BookablePeriods(date(2025, 3, 12), now))
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("  Morning ")
	assert.NoError(t, err)
	assert.Equal(t, PeriodMorning, p)

	_, err = ParsePeriod("night")
	assert.Error(t, err)
}
