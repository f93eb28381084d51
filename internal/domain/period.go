package domain

import (
	"fmt"
	"strings"
)

// Period is one of the three service windows of a day
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
	PeriodEvening   Period = "evening" // special period, see Booking lifecycle
)

// AllPeriods lists periods in the order they occur during the day
var AllPeriods = []Period{PeriodMorning, PeriodAfternoon, PeriodEvening}

// IsValid reports whether p is one of the known periods
func (p Period) IsValid() bool {
	switch p {
	case PeriodMorning, PeriodAfternoon, PeriodEvening:
		return true
	}
	return false
}

// ParsePeriod converts user input into a Period, ignoring case and surrounding spaces
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("unknown period %q", s)
	}
	return p, nil
}
