package reschedule_booking

import (
	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings/models"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Date         string `json:"date"`
	Period       string `json:"period"`
	TechnicianID string `json:"technicianId"`
	Reason       string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *RescheduleRequest) ToServiceRequest(bookingID string) (*models.RescheduleRequest, error) {
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	period, err := domain.ParsePeriod(r.Period)
	if err != nil {
		return nil, err
	}
	return &models.RescheduleRequest{
		BookingID:    bookingID,
		Date:         date,
		Period:       period,
		TechnicianID: r.TechnicianID,
		Reason:       r.Reason,
	}, nil
}
