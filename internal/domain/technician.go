package domain

import (
	"sort"
	"strings"
)

// Capacity holds the six independent slot counters of a technician.
// Morning/Afternoon/Evening apply per period on weekdays only;
// Saturday/Sunday/Holiday are whole-day pools shared by all periods.
type Capacity struct {
	Morning   int `json:"morning"`
	Afternoon int `json:"afternoon"`
	Evening   int `json:"evening"`
	Saturday  int `json:"saturday"`
	Sunday    int `json:"sunday"`
	Holiday   int `json:"holiday"`
}

// IsValid returns true if all counters are non-negative
func (c Capacity) IsValid() bool {
	return c.Morning >= 0 && c.Afternoon >= 0 && c.Evening >= 0 &&
		c.Saturday >= 0 && c.Sunday >= 0 && c.Holiday >= 0
}

// Technician represents a field technician and the cities they serve
type Technician struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Cities   []string `json:"cities"`
	Capacity Capacity `json:"capacity"`
}

// DailyCapacity resolves the slot capacity for a day type and period.
// Weekdays partition capacity by period; special days ignore the period.
func (t *Technician) DailyCapacity(dayType DayType, period Period) int {
	var value int
	switch dayType {
	case DayHoliday:
		value = t.Capacity.Holiday
	case DaySunday:
		value = t.Capacity.Sunday
	case DaySaturday:
		value = t.Capacity.Saturday
	default:
		switch period {
		case PeriodMorning:
			value = t.Capacity.Morning
		case PeriodAfternoon:
			value = t.Capacity.Afternoon
		case PeriodEvening:
			value = t.Capacity.Evening
		}
	}
	if value < 0 {
		return 0
	}
	return value
}

// ServesCity matches city against the technician's cities, trimmed and case-insensitive
func (t *Technician) ServesCity(city string) bool {
	needle := NormalizeKey(city)
	if needle == "" {
		return false
	}
	for _, c := range t.Cities {
		if NormalizeKey(c) == needle {
			return true
		}
	}
	return false
}

// NormalizeCities trims, drops blanks and removes case-insensitive duplicates
// keeping the first spelling seen. The result is sorted for stable storage.
func NormalizeCities(cities []string) []string {
	seen := make(map[string]struct{}, len(cities))
	out := make([]string, 0, len(cities))
	for _, c := range cities {
		c = strings.TrimSpace(c)
		key := NormalizeKey(c)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// NormalizeKey is the comparison form used for names, cities and dates
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
