package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// Audit action labels
const (
	ActionBookingCreate     = "booking.create"
	ActionBookingConfirm    = "booking.confirm"
	ActionBookingExpire     = "booking.expire"
	ActionBookingReschedule = "booking.reschedule"
	ActionBookingRemove     = "booking.remove"
	ActionBookingExecution  = "booking.execution"
)

// AppendAudit returns a new log with entry in front, keeping at most
// domain.MaxAuditEntries entries (oldest evicted first).
func AppendAudit(logs []domain.AuditEntry, entry domain.AuditEntry) []domain.AuditEntry {
	size := len(logs) + 1
	if size > domain.MaxAuditEntries {
		size = domain.MaxAuditEntries
	}
	out := make([]domain.AuditEntry, 0, size)
	out = append(out, entry)
	out = append(out, logs[:size-1]...)
	return out
}

// NewAuditEntry builds an entry with a generated id and timestamp
func NewAuditEntry(actor, action, details string, now time.Time) domain.AuditEntry {
	return domain.AuditEntry{
		ID:        uuid.NewString(),
		Timestamp: now.Format(domain.TimestampFormat),
		User:      actor,
		Action:    action,
		Details:   details,
	}
}

// Record appends an audit entry to the snapshot in place.
// Callers must own snap (obtained through Clone).
func Record(snap *domain.Snapshot, actor, action string, now time.Time, format string, args ...interface{}) {
	snap.Logs = AppendAudit(snap.Logs, NewAuditEntry(actor, action, fmt.Sprintf(format, args...), now))
}
