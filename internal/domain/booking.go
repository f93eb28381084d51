package domain

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusClosed    BookingStatus = "closed" // archival marker, never consumes a slot
)

// ExecutionStatus tracks the field work of a booking
type ExecutionStatus string

const (
	ExecutionPending    ExecutionStatus = "pending"
	ExecutionInProgress ExecutionStatus = "in_progress"
	ExecutionCompleted  ExecutionStatus = "completed"
	ExecutionUnfinished ExecutionStatus = "unfinished"
)

// BookingKind distinguishes time-boxed reservations from regular bookings
type BookingKind string

const (
	KindStandard    BookingKind = "standard"
	KindProvisional BookingKind = "provisional"
)

// Booking represents a client service booking assigned to a technician
type Booking struct {
	ID          string `json:"id"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	City        string `json:"city"`
	Date        string `json:"date"` // YYYY-MM-DD, no time zone
	Period      Period `json:"period"`

	// Denormalized technician name for listings
	TechnicianID   string `json:"technicianId"`
	TechnicianName string `json:"technicianName"`

	Activity            string          `json:"activity"`
	Status              BookingStatus   `json:"status"`
	ExecutionStatus     ExecutionStatus `json:"executionStatus"`
	NonConclusionReason string          `json:"nonConclusionReason,omitempty"`
	Kind                BookingKind     `json:"kind"`

	// CreatedAt is kept as text: stored data may carry missing or garbled values
	CreatedAt string `json:"createdAt"`
	Notes     string `json:"notes"`
	CreatedBy string `json:"createdBy"`
}

// ConsumesSlot returns true if the booking counts against technician capacity
func (b *Booking) ConsumesSlot() bool {
	return b.Status != StatusClosed
}

// IsProvisional returns true for time-boxed reservations
func (b *Booking) IsProvisional() bool {
	return b.Kind == KindProvisional
}

// CreatedTime parses CreatedAt. ok is false when the value is missing or unparsable.
func (b *Booking) CreatedTime() (time.Time, bool) {
	raw := strings.TrimSpace(b.CreatedAt)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(TimestampFormat, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// OnDate compares the booking date with date
func (b *Booking) OnDate(date time.Time) bool {
	return strings.TrimSpace(b.Date) == date.Format(DateFormat)
}

// IsValidExecutionStatus validates an execution status value
func IsValidExecutionStatus(s ExecutionStatus) bool {
	switch s {
	case ExecutionPending, ExecutionInProgress, ExecutionCompleted, ExecutionUnfinished:
		return true
	}
	return false
}

// BookingsFilter narrows booking listings. Empty fields do not filter.
type BookingsFilter struct {
	City         string
	TechnicianID string
	From         *time.Time
	To           *time.Time
	Status       *BookingStatus
}

// Matches reports whether b passes the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.City != "" && NormalizeKey(f.City) != NormalizeKey(b.City) {
		return false
	}
	if f.TechnicianID != "" && f.TechnicianID != b.TechnicianID {
		return false
	}
	if f.Status != nil && *f.Status != b.Status {
		return false
	}
	if f.From != nil || f.To != nil {
		date, err := ParseDate(b.Date)
		if err != nil {
			return false
		}
		if f.From != nil && date.Before(truncateDay(*f.From)) {
			return false
		}
		if f.To != nil && date.After(truncateDay(*f.To)) {
			return false
		}
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
