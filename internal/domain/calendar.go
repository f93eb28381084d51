package domain

import (
	"strings"
	"time"
)

// DayType selects which capacity pool applies to a calendar date
type DayType int

const (
	DayWeekday DayType = iota
	DaySaturday
	DaySunday
	DayHoliday
)

// String returns a stable label used in logs and metrics
func (d DayType) String() string {
	switch d {
	case DayWeekday:
		return "weekday"
	case DaySaturday:
		return "saturday"
	case DaySunday:
		return "sunday"
	case DayHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// IsSpecial reports whether capacity is pooled for the whole day
func (d DayType) IsSpecial() bool {
	return d != DayWeekday
}

// HolidaySet is a set of ISO dates (YYYY-MM-DD)
type HolidaySet map[string]struct{}

// NewHolidaySet builds a set from a list of ISO dates, skipping blanks
func NewHolidaySet(dates []string) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		set[d] = struct{}{}
	}
	return set
}

// Contains reports whether date is a holiday
func (h HolidaySet) Contains(date time.Time) bool {
	_, ok := h[date.Format(DateFormat)]
	return ok
}

// ClassifyDay resolves the day type of date.
// Precedence: holiday > Sunday > Saturday > weekday.
func ClassifyDay(date time.Time, holidays HolidaySet) DayType {
	if holidays.Contains(date) {
		return DayHoliday
	}
	switch date.Weekday() {
	case time.Sunday:
		return DaySunday
	case time.Saturday:
		return DaySaturday
	default:
		return DayWeekday
	}
}

// IsBookingWindowOpen reports whether anything can still be booked for date.
// Only today is subject to the hour-of-day cutoff.
func IsBookingWindowOpen(date, now time.Time) bool {
	if !IsSameDay(date, now) {
		return true
	}
	return now.Hour() < DayCutoffHour
}

// OpenPeriodsForToday returns the periods of the current day that are still bookable at now
func OpenPeriodsForToday(now time.Time) []Period {
	hour := now.Hour()
	if hour >= DayCutoffHour {
		return []Period{}
	}

	periods := make([]Period, 0, len(AllPeriods))
	if hour < MorningCutoffHour {
		periods = append(periods, PeriodMorning)
	}
	if hour < AfternoonCutoffHour {
		periods = append(periods, PeriodAfternoon)
	}
	periods = append(periods, PeriodEvening)
	return periods
}

// BookablePeriods returns the periods not excluded by the hour cutoffs for date
func BookablePeriods(date, now time.Time) []Period {
	if !IsSameDay(date, now) {
		out := make([]Period, len(AllPeriods))
		copy(out, AllPeriods)
		return out
	}
	return OpenPeriodsForToday(now)
}

// IsSameDay compares calendar dates ignoring the time of day.
// date is interpreted in now's location.
func IsSameDay(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseDate parses an ISO date in the local time zone
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, strings.TrimSpace(s), time.Local)
}

// FormatDate renders a date as YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
