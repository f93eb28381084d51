// Package sync обслуживает ручную отправку и загрузку снапшота.
package sync

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/remote"
)

const (
	msgNotConfigured = "адрес удаленного хранилища не настроен"
	msgUnauthorized  = "удаленное хранилище отклонило токен, проверьте API токен в настройках"
	msgRemoteFailure = "удаленное хранилище недоступно, попробуйте позже"
)

// SyncResponse HTTP response model
type SyncResponse struct {
	Direction   string `json:"direction"`
	Technicians int    `json:"technicians"`
	Bookings    int    `json:"bookings"`
	Warning     string `json:"warning,omitempty"`
}

type Handler struct {
	service SyncService
	logger  Logger
}

func NewHandler(service SyncService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Push POST /api/v1/sync/push
func (h *Handler) Push(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Push(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, result)
}

// Pull POST /api/v1/sync/pull
func (h *Handler) Pull(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Pull(r.Context(), middleware.Actor(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, result)
}

func (h *Handler) respond(w http.ResponseWriter, result *remote.Result) {
	handlers.RespondJSON(w, http.StatusOK, SyncResponse{
		Direction:   result.Direction,
		Technicians: result.Technicians,
		Bookings:    result.Bookings,
		Warning:     result.Warning,
	})
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, remote.ErrNotConfigured):
		h.logger.Warn("POST %s - Remote endpoint not configured", r.URL.Path)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgNotConfigured)

	case errors.Is(err, remote.ErrUnauthorized):
		h.logger.Warn("POST %s - Remote rejected token: %v", r.URL.Path, err)
		handlers.RespondUnauthorized(w, msgUnauthorized)

	case errors.Is(err, remote.ErrRemote):
		h.logger.Warn("POST %s - Remote failure: %v", r.URL.Path, err)
		handlers.RespondBadGateway(w, msgRemoteFailure)

	default:
		h.logger.Error("POST %s - Failed: %v", r.URL.Path, err)
		handlers.RespondInternalError(w)
	}
}
