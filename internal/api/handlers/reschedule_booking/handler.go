package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/bookings"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrPeriod = "некорректная дата (YYYY-MM-DD) или период (morning, afternoon, evening)"
	msgInvalidInput        = "техник и причина переноса обязательны"
	msgNotFound            = "бронирование не найдено"
	msgTechnicianNotFound  = "техник не найден"
	msgTechnicianNotInCity = "техник не обслуживает город бронирования"
	msgInvalidBookingDate  = "дата переноса в прошлом"
	msgSlotNotAvailable    = "у техника нет свободных слотов на выбранную дату"
	msgPeriodClosed        = "период на сегодня уже закрыт для бронирования"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(bookingID)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrPeriod)
		return
	}

	result, err := h.service.Reschedule(r.Context(), serviceReq, middleware.Actor(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)
		case errors.Is(err, bookings.ErrTechnicianNotFound):
			handlers.RespondNotFound(w, msgTechnicianNotFound)
		case errors.Is(err, bookings.ErrTechnicianNotInCity):
			handlers.RespondBadRequest(w, msgTechnicianNotInCity)
		case errors.Is(err, bookings.ErrInvalidBookingDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)
		case errors.Is(err, bookings.ErrPeriodClosed):
			handlers.RespondBadRequest(w, msgPeriodClosed)
		case errors.Is(err, bookings.ErrSlotNotAvailable):
			handlers.RespondConflict(w, msgSlotNotAvailable)
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /bookings/{id}/reschedule - Failed to reschedule: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /bookings/{id}/reschedule - Rejected: booking_id=%s, reason=%v", bookingID, err)
		return
	}

	h.logger.Info("POST /bookings/{id}/reschedule - Booking rescheduled: booking_id=%s, date=%s, period=%s",
		bookingID, result.Booking.Date, result.Booking.Period)
	handlers.RespondJSON(w, http.StatusOK, handlers.BookingResponse{Booking: result.Booking, Warning: result.Warning})
}
