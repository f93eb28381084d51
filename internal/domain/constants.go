package domain

import "time"

// Booking window cutoffs, expressed as local hours of the current day
const (
	DayCutoffHour       = 16 // no period of today is bookable from this hour on
	MorningCutoffHour   = 11
	AfternoonCutoffHour = 16
)

// Lifecycle limits
const (
	ProvisionalExpiration = 30 * time.Minute
	MaxAuditEntries       = 500
)

// Business validation constants
const (
	MaxNotesLength      = 2000
	MaxClientNameLength = 200
	MaxReasonLength     = 500
	MaxCapacity         = 1000
)

// Time format constants
const (
	DateFormat      = "2006-01-02" // YYYY-MM-DD
	TimestampFormat = time.RFC3339
	HistoryFormat   = "2006-01-02 15:04"
)

// CurrentSchemaVersion is the snapshot layout written by this service
const CurrentSchemaVersion = 2
