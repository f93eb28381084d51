package models

import (
	"time"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

// Request модели

// ListRequest фильтр списка бронирований. Пустые поля не фильтруют.
type ListRequest struct {
	City         string
	TechnicianID string
	From         *time.Time
	To           *time.Time
	Status       *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		City:         r.City,
		TechnicianID: r.TechnicianID,
		From:         r.From,
		To:           r.To,
	}
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// RescheduleRequest перенос бронирования
type RescheduleRequest struct {
	BookingID    string
	Date         time.Time
	Period       domain.Period
	TechnicianID string
	Reason       string
}

// UpdateExecutionRequest смена статуса выполнения
type UpdateExecutionRequest struct {
	BookingID string
	Status    string
	Reason    string
}

// Response модели

// BookingResult бронирование после изменения
type BookingResult struct {
	Booking domain.Booking
	Warning string // непустое, если состояние не удалось сохранить в хранилище
}

// MutationResult результат изменения без возвращаемого бронирования
type MutationResult struct {
	Warning string
}

// ConfirmationMessage текст для клиента
type ConfirmationMessage struct {
	BookingID string
	Message   string
}
