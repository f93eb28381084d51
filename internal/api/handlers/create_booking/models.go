package create_booking

import (
	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	createBooking "github.com/m04kA/SMC-FieldScheduler/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName   string `json:"clientName"`
	ClientPhone  string `json:"clientPhone"`
	City         string `json:"city"`
	Date         string `json:"date"`   // "2025-03-10"
	Period       string `json:"period"` // morning | afternoon | evening
	TechnicianID string `json:"technicianId"`
	Activity     string `json:"activity"`
	Notes        string `json:"notes,omitempty"`
	Provisional  bool   `json:"provisional"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor string) (*createBooking.Request, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	period, err := domain.ParsePeriod(r.Period)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientName:   r.ClientName,
		ClientPhone:  r.ClientPhone,
		City:         r.City,
		Date:         date,
		Period:       period,
		TechnicianID: r.TechnicianID,
		Activity:     r.Activity,
		Notes:        r.Notes,
		Provisional:  r.Provisional,
		Actor:        actor,
	}, nil
}
