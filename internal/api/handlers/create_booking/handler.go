package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-FieldScheduler/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrPeriod = "некорректная дата (YYYY-MM-DD) или период (morning, afternoon, evening)"
	msgInvalidInput        = "некорректные данные бронирования"
	msgTechnicianNotFound  = "техник не найден"
	msgTechnicianNotInCity = "техник не обслуживает выбранный город"
	msgInvalidBookingDate  = "дата бронирования в прошлом"
	msgPeriodClosed        = "период на сегодня уже закрыт для бронирования"
	msgSlotNotAvailable    = "у техника нет свободных слотов"
	msgDuplicateBooking    = "у клиента уже есть бронирование в этом городе на эту дату"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(middleware.Actor(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrPeriod)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: technician=%s, date=%s, period=%s",
				req.TechnicianID, req.Date, req.Period)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: city=%s, date=%s", req.City, req.Date)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrTechnicianNotFound):
			h.logger.Warn("POST /bookings - Technician not found: technician=%s", req.TechnicianID)
			handlers.RespondNotFound(w, msgTechnicianNotFound)

		case errors.Is(err, createBooking.ErrTechnicianNotInCity):
			h.logger.Warn("POST /bookings - Technician not in city: technician=%s, city=%s", req.TechnicianID, req.City)
			handlers.RespondBadRequest(w, msgTechnicianNotInCity)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrPeriodClosed):
			h.logger.Warn("POST /bookings - Period closed: date=%s, period=%s", req.Date, req.Period)
			handlers.RespondBadRequest(w, msgPeriodClosed)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: technician=%s, date=%s, error=%v",
				req.TechnicianID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, technician=%s",
		result.Booking.ID, result.Booking.TechnicianID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.BookingResponse{
		Booking: result.Booking,
		Warning: result.Warning,
	})
}
