package scheduling

import "errors"

var (
	// ErrTechnicianRequired is returned when no technician was selected
	ErrTechnicianRequired = errors.New("scheduling: technician is required")

	// ErrTechnicianNotFound is returned when the technician is not in the snapshot
	ErrTechnicianNotFound = errors.New("scheduling: technician not found")

	// ErrReasonRequired is returned when a mandatory reason is blank
	ErrReasonRequired = errors.New("scheduling: reason is required")

	// ErrInvalidDate is returned for a zero or unparsable date
	ErrInvalidDate = errors.New("scheduling: invalid date")

	// ErrInvalidPeriod is returned for an unknown period
	ErrInvalidPeriod = errors.New("scheduling: invalid period")

	// ErrInvalidExecutionStatus is returned for an unknown execution status
	ErrInvalidExecutionStatus = errors.New("scheduling: invalid execution status")

	// ErrDuplicateBooking is returned when the client already has a booking for the city and date
	ErrDuplicateBooking = errors.New("scheduling: duplicate booking")

	// ErrBookingNotFound is returned when no booking has the requested id
	ErrBookingNotFound = errors.New("scheduling: booking not found")
)
