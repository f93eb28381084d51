// Package catalog обслуживает справочники: города, виды работ и праздничные дни.
package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidValue       = "некорректное значение"
)

// ValueRequest HTTP request model
type ValueRequest struct {
	Value string `json:"value"`
}

type (
	listFunc   func(ctx context.Context) ([]string, error)
	mutateFunc func(ctx context.Context, value, actor string) (*admin.Result, error)
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListCities GET /api/v1/cities
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListCities)
}

// AddCity POST /api/v1/cities
func (h *Handler) AddCity(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, h.service.AddCity)
}

// RemoveCity DELETE /api/v1/cities/{value}
func (h *Handler) RemoveCity(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.service.RemoveCity)
}

// ListActivities GET /api/v1/activities
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListActivities)
}

// AddActivity POST /api/v1/activities
func (h *Handler) AddActivity(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, h.service.AddActivity)
}

// RemoveActivity DELETE /api/v1/activities/{value}
func (h *Handler) RemoveActivity(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.service.RemoveActivity)
}

// ListHolidays GET /api/v1/holidays
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.ListHolidays)
}

// AddHoliday POST /api/v1/holidays
func (h *Handler) AddHoliday(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, h.service.AddHoliday)
}

// RemoveHoliday DELETE /api/v1/holidays/{value}
func (h *Handler) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, h.service.RemoveHoliday)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, fn listFunc) {
	result, err := fn(r.Context())
	if err != nil {
		h.logger.Error("GET %s - Failed: %v", r.URL.Path, err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request, fn mutateFunc) {
	var req ValueRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	h.mutate(w, r, fn, req.Value)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request, fn mutateFunc) {
	h.mutate(w, r, fn, mux.Vars(r)["value"])
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn mutateFunc, value string) {
	result, err := fn(r.Context(), value, middleware.Actor(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidInput):
			h.logger.Warn("%s %s - Invalid value %q: %v", r.Method, r.URL.Path, value, err)
			handlers.RespondBadRequest(w, msgInvalidValue)

		default:
			h.logger.Error("%s %s - Failed: %v", r.Method, r.URL.Path, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s %s - value=%q", r.Method, r.URL.Path, value)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewMutationResponse(result.Warning))
}
