package get_available_technicians

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	getAvailableTechnicians "github.com/m04kA/SMC-FieldScheduler/internal/usecase/get_available_technicians"
)

const (
	msgMissingParams = "параметры city, date и period обязательны"
	msgInvalidParams = "некорректная дата (YYYY-MM-DD) или период (morning, afternoon, evening)"
)

type Handler struct {
	useCase GetAvailableTechniciansUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTechniciansUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/technicians
// Query params: city, date (YYYY-MM-DD), period
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city, dateStr, periodStr := q.Get("city"), q.Get("date"), q.Get("period")
	if city == "" || dateStr == "" || periodStr == "" {
		h.logger.Warn("GET /availability/technicians - Missing parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	useCaseReq, err := ToUseCaseRequest(city, dateStr, periodStr)
	if err != nil {
		h.logger.Warn("GET /availability/technicians - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableTechnicians.ErrInvalidInput):
			h.logger.Warn("GET /availability/technicians - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /availability/technicians - Failed to resolve availability: city=%s, date=%s, error=%v",
				city, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/technicians - city=%s, date=%s, period=%s, available=%d",
		city, dateStr, periodStr, len(result.Technicians))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
