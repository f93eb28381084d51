package notifier

import (
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// EventType вид изменения бронирования
type EventType string

const (
	EventCreated     EventType = "created"
	EventConfirmed   EventType = "confirmed"
	EventRescheduled EventType = "rescheduled"
	EventRemoved     EventType = "removed"
	EventExpired     EventType = "expired"
	EventExecution   EventType = "execution"
)

// BookingEvent сообщение для технического специалиста
type BookingEvent struct {
	Type            EventType              `json:"type"`
	BookingID       string                 `json:"bookingId"`
	TechnicianID    string                 `json:"technicianId"`
	ClientName      string                 `json:"clientName"`
	City            string                 `json:"city"`
	Date            string                 `json:"date"`
	Period          domain.Period          `json:"period"`
	Activity        string                 `json:"activity"`
	Kind            domain.BookingKind     `json:"kind"`
	Status          domain.BookingStatus   `json:"status"`
	ExecutionStatus domain.ExecutionStatus `json:"executionStatus"`
	OccurredAt      string                 `json:"occurredAt"`
}

// NewBookingEvent собирает событие из бронирования
func NewBookingEvent(eventType EventType, b domain.Booking, now time.Time) BookingEvent {
	return BookingEvent{
		Type:            eventType,
		BookingID:       b.ID,
		TechnicianID:    b.TechnicianID,
		ClientName:      b.ClientName,
		City:            b.City,
		Date:            b.Date,
		Period:          b.Period,
		Activity:        b.Activity,
		Kind:            b.Kind,
		Status:          b.Status,
		ExecutionStatus: b.ExecutionStatus,
		OccurredAt:      now.Format(domain.TimestampFormat),
	}
}
