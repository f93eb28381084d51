package scheduling

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// CreateRequest describes a new booking
type CreateRequest struct {
	ClientName   string
	ClientPhone  string
	City         string
	Date         time.Time
	Period       domain.Period
	TechnicianID string
	Activity     string
	Notes        string
	Kind         domain.BookingKind // empty means standard
	CreatedBy    string
}

// RescheduleRequest moves a booking to another date, period or technician
type RescheduleRequest struct {
	BookingID    string
	Date         time.Time
	Period       domain.Period
	TechnicianID string
	Reason       string
}

// ExpiryResult is the outcome of ExpireProvisionals
type ExpiryResult struct {
	Snapshot *domain.Snapshot
	Expired  []domain.Booking
	Repaired int // provisional bookings whose creation time was reset to now
}

// Changed reports whether the snapshot differs from the input
func (r ExpiryResult) Changed() bool {
	return len(r.Expired) > 0 || r.Repaired > 0
}

// CreateBooking adds a booking for the selected technician.
// Capacity is not re-checked here: callers resolve availability first.
// On error the input snapshot is returned as is.
func CreateBooking(snap *domain.Snapshot, req CreateRequest, now time.Time) (*domain.Snapshot, *domain.Booking, error) {
	if strings.TrimSpace(req.TechnicianID) == "" {
		return snap, nil, ErrTechnicianRequired
	}
	if req.Date.IsZero() {
		return snap, nil, ErrInvalidDate
	}
	if !req.Period.IsValid() {
		return snap, nil, ErrInvalidPeriod
	}

	tech := snap.FindTechnician(req.TechnicianID)
	if tech == nil {
		return snap, nil, ErrTechnicianNotFound
	}

	if CheckDuplicate(snap, req.ClientName, req.City, req.Date) {
		return snap, nil, ErrDuplicateBooking
	}

	kind := domain.KindStandard
	if req.Kind == domain.KindProvisional {
		kind = domain.KindProvisional
	}

	booking := domain.Booking{
		ID:              uuid.NewString(),
		ClientName:      strings.TrimSpace(req.ClientName),
		ClientPhone:     strings.TrimSpace(req.ClientPhone),
		City:            strings.TrimSpace(req.City),
		Date:            domain.FormatDate(req.Date),
		Period:          req.Period,
		TechnicianID:    tech.ID,
		TechnicianName:  tech.Name,
		Activity:        strings.TrimSpace(req.Activity),
		Status:          statusForPeriod(req.Period),
		ExecutionStatus: domain.ExecutionPending,
		Kind:            kind,
		CreatedAt:       now.Format(domain.TimestampFormat),
		Notes:           req.Notes,
		CreatedBy:       req.CreatedBy,
	}

	next := snap.Clone()
	next.Bookings = append(next.Bookings, booking)
	Record(next, req.CreatedBy, ActionBookingCreate, now,
		"booking=%s client=%q city=%s date=%s period=%s technician=%s kind=%s",
		booking.ID, booking.ClientName, booking.City, booking.Date, booking.Period, booking.TechnicianName, booking.Kind)

	return next, &next.Bookings[len(next.Bookings)-1], nil
}

// statusForPeriod is the lifecycle status a booking takes in period.
// Evening bookings are archived as closed and never hold capacity.
func statusForPeriod(period domain.Period) domain.BookingStatus {
	if period == domain.PeriodEvening {
		return domain.StatusClosed
	}
	return domain.StatusConfirmed
}

// CheckDuplicate reports whether a booking already exists for the same
// client, city and date, regardless of technician or period.
func CheckDuplicate(snap *domain.Snapshot, clientName, city string, date time.Time) bool {
	if snap == nil || date.IsZero() {
		return false
	}
	client := domain.NormalizeKey(clientName)
	town := domain.NormalizeKey(city)
	day := domain.FormatDate(date)

	for i := range snap.Bookings {
		b := &snap.Bookings[i]
		if domain.NormalizeKey(b.ClientName) == client &&
			domain.NormalizeKey(b.City) == town &&
			strings.TrimSpace(b.Date) == day {
			return true
		}
	}
	return false
}

// ConfirmProvisional promotes a provisional booking to standard in place.
// A booking that is already standard counts as confirmed, so repeated
// confirmations succeed. ok is false only for an unknown id.
func ConfirmProvisional(snap *domain.Snapshot, id, actor string, now time.Time) (*domain.Snapshot, bool) {
	idx := snap.FindBooking(id)
	if idx < 0 {
		return snap, false
	}
	if !snap.Bookings[idx].IsProvisional() {
		return snap, true
	}

	next := snap.Clone()
	next.Bookings[idx].Kind = domain.KindStandard
	Record(next, actor, ActionBookingConfirm, now, "booking=%s client=%q", id, next.Bookings[idx].ClientName)
	return next, true
}

// ExpireProvisionals removes provisional bookings older than
// domain.ProvisionalExpiration. A provisional booking without a readable
// creation time is treated as just created and its timestamp is repaired.
func ExpireProvisionals(snap *domain.Snapshot, actor string, now time.Time) ExpiryResult {
	result := ExpiryResult{Snapshot: snap, Expired: []domain.Booking{}}

	var (
		kept     = make([]domain.Booking, 0, len(snap.Bookings))
		repaired = 0
	)
	for _, b := range snap.Bookings {
		if !b.IsProvisional() {
			kept = append(kept, b)
			continue
		}
		created, ok := b.CreatedTime()
		if !ok {
			b.CreatedAt = now.Format(domain.TimestampFormat)
			repaired++
			kept = append(kept, b)
			continue
		}
		if now.Sub(created) > domain.ProvisionalExpiration {
			result.Expired = append(result.Expired, b)
			continue
		}
		kept = append(kept, b)
	}

	if len(result.Expired) == 0 && repaired == 0 {
		return result
	}

	next := snap.Clone()
	next.Bookings = kept
	if len(result.Expired) > 0 {
		Record(next, actor, ActionBookingExpire, now, "removed %d expired provisional booking(s)", len(result.Expired))
	}

	result.Snapshot = next
	result.Repaired = repaired
	return result
}

// Reschedule moves a booking and appends a history line to its notes.
// Slots are not tracked separately: the old one frees up and the new one
// is consumed because availability is recomputed from bookings. Confirmed
// and closed bookings take the status of the target period, as on creation.
func Reschedule(snap *domain.Snapshot, req RescheduleRequest, actor string, now time.Time) (*domain.Snapshot, *domain.Booking, error) {
	if strings.TrimSpace(req.TechnicianID) == "" {
		return snap, nil, ErrTechnicianRequired
	}
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return snap, nil, ErrReasonRequired
	}
	if req.Date.IsZero() {
		return snap, nil, ErrInvalidDate
	}
	if !req.Period.IsValid() {
		return snap, nil, ErrInvalidPeriod
	}

	idx := snap.FindBooking(req.BookingID)
	if idx < 0 {
		return snap, nil, ErrBookingNotFound
	}
	tech := snap.FindTechnician(req.TechnicianID)
	if tech == nil {
		return snap, nil, ErrTechnicianNotFound
	}

	next := snap.Clone()
	b := &next.Bookings[idx]

	from := fmt.Sprintf("%s %s (%s)", b.Date, b.Period, b.TechnicianName)
	to := fmt.Sprintf("%s %s (%s)", domain.FormatDate(req.Date), req.Period, tech.Name)
	history := fmt.Sprintf("[%s] Rescheduled by %s: %s -> %s. Reason: %s",
		now.Format(domain.HistoryFormat), actor, from, to, reason)

	b.Date = domain.FormatDate(req.Date)
	b.Period = req.Period
	b.TechnicianID = tech.ID
	b.TechnicianName = tech.Name
	if b.Status == domain.StatusConfirmed || b.Status == domain.StatusClosed {
		b.Status = statusForPeriod(req.Period)
	}
	b.ExecutionStatus = domain.ExecutionPending
	b.NonConclusionReason = ""
	if strings.TrimSpace(b.Notes) == "" {
		b.Notes = history
	} else {
		b.Notes = b.Notes + "\n" + history
	}

	Record(next, actor, ActionBookingReschedule, now, "booking=%s %s -> %s reason=%q", b.ID, from, to, reason)
	return next, b, nil
}

// RemoveBooking deletes a booking unconditionally. ok is false for an unknown id.
func RemoveBooking(snap *domain.Snapshot, id, actor string, now time.Time) (*domain.Snapshot, bool) {
	idx := snap.FindBooking(id)
	if idx < 0 {
		return snap, false
	}

	removed := snap.Bookings[idx]
	next := snap.Clone()
	next.Bookings = append(next.Bookings[:idx], next.Bookings[idx+1:]...)
	Record(next, actor, ActionBookingRemove, now, "booking=%s client=%q date=%s period=%s",
		removed.ID, removed.ClientName, removed.Date, removed.Period)
	return next, true
}

// UpdateExecution changes the execution status of a booking.
// Unfinished requires a non-conclusion reason; any other status clears it.
func UpdateExecution(snap *domain.Snapshot, id string, status domain.ExecutionStatus, reason, actor string, now time.Time) (*domain.Snapshot, *domain.Booking, error) {
	if !domain.IsValidExecutionStatus(status) {
		return snap, nil, ErrInvalidExecutionStatus
	}
	reason = strings.TrimSpace(reason)
	if status == domain.ExecutionUnfinished && reason == "" {
		return snap, nil, ErrReasonRequired
	}

	idx := snap.FindBooking(id)
	if idx < 0 {
		return snap, nil, ErrBookingNotFound
	}

	next := snap.Clone()
	b := &next.Bookings[idx]
	b.ExecutionStatus = status
	if status == domain.ExecutionUnfinished {
		b.NonConclusionReason = reason
	} else {
		b.NonConclusionReason = ""
	}

	Record(next, actor, ActionBookingExecution, now, "booking=%s execution=%s", b.ID, status)
	return next, b, nil
}
