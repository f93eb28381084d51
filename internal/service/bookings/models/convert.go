package models

import (
	"errors"
	"strings"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidExecutionStatus возвращается при некорректном статусе выполнения
	ErrInvalidExecutionStatus = errors.New("invalid execution status")
)

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(strings.ToLower(strings.TrimSpace(s)))
	switch status {
	case domain.StatusConfirmed, domain.StatusPending, domain.StatusClosed:
		return status, nil
	}
	return "", ErrInvalidStatus
}

// ToDomainExecutionStatus конвертирует строку в статус выполнения
func ToDomainExecutionStatus(s string) (domain.ExecutionStatus, error) {
	status := domain.ExecutionStatus(strings.ToLower(strings.TrimSpace(s)))
	if !domain.IsValidExecutionStatus(status) {
		return "", ErrInvalidExecutionStatus
	}
	return status, nil
}
