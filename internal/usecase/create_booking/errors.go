package create_booking

import "errors"

var (
	// ErrTechnicianNotFound возвращается, когда техник не найден
	ErrTechnicianNotFound = errors.New("create_booking: technician not found")

	// ErrTechnicianNotInCity возвращается, когда техник не обслуживает город
	ErrTechnicianNotInCity = errors.New("create_booking: technician does not serve this city")

	// ErrInvalidDate возвращается при дате в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrPeriodClosed возвращается, когда период на сегодня уже закрыт
	ErrPeriodClosed = errors.New("create_booking: period is no longer bookable today")

	// ErrSlotNotAvailable возвращается, когда у техника нет свободных слотов
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrDuplicateBooking возвращается, когда у клиента уже есть бронирование в этом городе на эту дату
	ErrDuplicateBooking = errors.New("create_booking: client already has a booking for this city and date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
