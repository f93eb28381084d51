// Package scheduling is the capacity resolution and booking lifecycle core.
// Every function takes the snapshot it works on explicitly; mutating
// operations return a new snapshot and never modify their input.
package scheduling

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// AvailableTechnicians returns technicians serving city that still have
// slots for date and period, ordered by technician id.
func AvailableTechnicians(snap *domain.Snapshot, city string, date time.Time, period domain.Period) []domain.TechnicianSlots {
	result := make([]domain.TechnicianSlots, 0)
	if snap == nil || date.IsZero() || !period.IsValid() {
		return result
	}

	dayType := domain.ClassifyDay(date, snap.HolidaySet())

	for i := range snap.Technicians {
		tech := &snap.Technicians[i]
		if !tech.ServesCity(city) {
			continue
		}

		slots := resolveSlots(snap, tech, dayType, date, period, "")
		if slots.Remaining > 0 {
			result = append(result, slots)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Technician.ID < result[j].Technician.ID
	})

	return result
}

// TechnicianAvailability resolves the slots of a single technician, including
// full ones. ok is false when the technician does not exist.
func TechnicianAvailability(snap *domain.Snapshot, technicianID string, date time.Time, period domain.Period) (domain.TechnicianSlots, bool) {
	return TechnicianAvailabilityExcluding(snap, technicianID, date, period, "")
}

// TechnicianAvailabilityExcluding is TechnicianAvailability with the booking
// excludeID left out of the used count, so a booking being moved does not
// occupy the slot it is checked against.
func TechnicianAvailabilityExcluding(snap *domain.Snapshot, technicianID string, date time.Time, period domain.Period, excludeID string) (domain.TechnicianSlots, bool) {
	tech := snap.FindTechnician(technicianID)
	if tech == nil {
		return domain.TechnicianSlots{}, false
	}
	dayType := domain.ClassifyDay(date, snap.HolidaySet())
	return resolveSlots(snap, tech, dayType, date, period, excludeID), true
}

// OpenPeriods returns the periods of date that have at least one technician
// with remaining slots in city, honouring today's hour cutoffs.
func OpenPeriods(snap *domain.Snapshot, city string, date, now time.Time) []domain.Period {
	periods := make([]domain.Period, 0, len(domain.AllPeriods))
	if snap == nil || domain.NormalizeKey(city) == "" || date.IsZero() {
		return periods
	}
	if !domain.IsBookingWindowOpen(date, now) {
		return periods
	}

	for _, period := range domain.BookablePeriods(date, now) {
		if len(AvailableTechnicians(snap, city, date, period)) > 0 {
			periods = append(periods, period)
		}
	}
	return periods
}

func resolveSlots(snap *domain.Snapshot, tech *domain.Technician, dayType domain.DayType, date time.Time, period domain.Period, excludeID string) domain.TechnicianSlots {
	capacity := tech.DailyCapacity(dayType, period)
	used := countUsedSlots(snap.Bookings, tech.ID, dayType, date, period, excludeID)

	remaining := capacity - used
	if remaining < 0 {
		remaining = 0
	}

	return domain.TechnicianSlots{
		Technician: *tech,
		DayType:    dayType,
		Capacity:   capacity,
		Used:       used,
		Remaining:  remaining,
	}
}

// countUsedSlots counts bookings consuming a slot of technicianID.
// Special days pool every period of the date; weekdays count only the period.
// Closed bookings never consume; provisional ones do.
func countUsedSlots(bookings []domain.Booking, technicianID string, dayType domain.DayType, date time.Time, period domain.Period, excludeID string) int {
	count := 0
	for i := range bookings {
		b := &bookings[i]
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.TechnicianID != technicianID || !b.ConsumesSlot() || !b.OnDate(date) {
			continue
		}
		if !dayType.IsSpecial() && b.Period != period {
			continue
		}
		count++
	}
	return count
}
