package technicians

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные техника"
	msgNotFound           = "техник не найден"
	msgHasBookings        = "у техника есть предстоящие бронирования"
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

// List GET /api/v1/technicians
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListTechnicians(r.Context())
	if err != nil {
		h.logger.Error("GET /technicians - Failed to list technicians: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/technicians
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, "", http.StatusCreated)
}

// Update PUT /api/v1/technicians/{technicianId}
// Неизвестный ID создает техника с этим ID
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	h.upsert(w, r, mux.Vars(r)["technicianId"], http.StatusOK)
}

// Delete DELETE /api/v1/technicians/{technicianId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["technicianId"]

	result, err := h.service.DeleteTechnician(r.Context(), id, middleware.Actor(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrTechnicianNotFound):
			h.logger.Warn("DELETE /technicians/{id} - Technician not found: id=%s", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, admin.ErrTechnicianHasBookings):
			h.logger.Warn("DELETE /technicians/{id} - Technician has bookings: id=%s", id)
			handlers.RespondConflict(w, msgHasBookings)

		default:
			h.logger.Error("DELETE /technicians/{id} - Failed: id=%s, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /technicians/{id} - Technician deleted: id=%s", id)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewMutationResponse(result.Warning))
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req TechnicianRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s /technicians - Invalid request body: %v", r.Method, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	tech, result, err := h.service.UpsertTechnician(r.Context(), req.ToServiceRequest(id), middleware.Actor(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrInvalidInput):
			h.logger.Warn("%s /technicians - Invalid input: %v", r.Method, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("%s /technicians - Failed to save technician: %v", r.Method, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /technicians - Technician saved: id=%s", r.Method, tech.ID)
	handlers.RespondJSON(w, status, TechnicianResponse{Technician: *tech, Warning: result.Warning})
}
