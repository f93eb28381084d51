package analytics

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/analytics"
)

const (
	msgInvalidParams = "некорректные параметры запроса, даты ожидаются в формате YYYY-MM-DD"
	msgInvalidRange  = "некорректный диапазон дат"
)

type Handler struct {
	service AnalyticsService
	logger  Logger
}

func NewHandler(service AnalyticsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/analytics/report
// Query params: from, to (YYYY-MM-DD), city (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceReq, err := ToServiceRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /analytics/report - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	report, err := h.service.Report(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, analytics.ErrInvalidRange):
			h.logger.Warn("GET /analytics/report - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /analytics/report - Failed to build report: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /analytics/report - %s..%s total=%d", report.From, report.To, report.Total)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(report))
}
