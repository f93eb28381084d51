package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrTechnicianNotFound возвращается, когда техник не найден
	ErrTechnicianNotFound = errors.New("bookings: technician not found")

	// ErrTechnicianNotInCity возвращается, когда новый техник не обслуживает город бронирования
	ErrTechnicianNotInCity = errors.New("bookings: technician does not serve the booking city")

	// ErrSlotNotAvailable возвращается, когда в новом слоте нет мест
	ErrSlotNotAvailable = errors.New("bookings: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bookings: invalid input data")

	// ErrInvalidBookingDate возвращается при дате в прошлом
	ErrInvalidBookingDate = errors.New("bookings: invalid booking date")

	// ErrPeriodClosed возвращается, когда период на сегодня уже закрыт
	ErrPeriodClosed = errors.New("bookings: period is no longer bookable today")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
