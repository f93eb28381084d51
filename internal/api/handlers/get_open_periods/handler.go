package get_open_periods

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	getOpenPeriods "github.com/m04kA/SMC-FieldScheduler/internal/usecase/get_open_periods"
)

const (
	msgMissingParams = "параметры city и date обязательны"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
)

// OpenPeriodsResponse HTTP response model
type OpenPeriodsResponse struct {
	City    string   `json:"city"`
	Date    string   `json:"date"`
	DayType string   `json:"dayType"`
	Periods []string `json:"periods"`
}

type Handler struct {
	useCase GetOpenPeriodsUseCase
	logger  Logger
}

func NewHandler(useCase GetOpenPeriodsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/periods
// Query params: city, date (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	city, dateStr := r.URL.Query().Get("city"), r.URL.Query().Get("date")
	if city == "" || dateStr == "" {
		h.logger.Warn("GET /availability/periods - Missing parameters")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	date, err := domain.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability/periods - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getOpenPeriods.Request{City: city, Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getOpenPeriods.ErrInvalidInput):
			h.logger.Warn("GET /availability/periods - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingParams)

		default:
			h.logger.Error("GET /availability/periods - Failed: city=%s, date=%s, error=%v", city, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	periods := make([]string, 0, len(result.Periods))
	for _, p := range result.Periods {
		periods = append(periods, string(p))
	}

	h.logger.Info("GET /availability/periods - city=%s, date=%s, open=%v", city, dateStr, periods)
	handlers.RespondJSON(w, http.StatusOK, OpenPeriodsResponse{
		City:    result.City,
		Date:    domain.FormatDate(result.Date),
		DayType: result.DayType.String(),
		Periods: periods,
	})
}
