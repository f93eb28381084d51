// Package users обслуживает пользователей, токен синхронизации и журнал аудита.
package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-FieldScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
)

const (
	defaultAuditLimit = 100

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные пользователя"
	msgInvalidLimit       = "некорректный параметр limit"
	msgUserNotFound       = "пользователь не найден"
	msgUserExists         = "пользователь с таким именем уже существует"
	msgLastAdmin          = "нельзя удалить последнего администратора пользователей"
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

// List GET /api/v1/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("GET /users - Failed to list users: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	out := make([]UserResponse, 0, len(result))
	for _, u := range result {
		out = append(out, fromUserView(u, ""))
	}
	handlers.RespondJSON(w, http.StatusOK, out)
}

// Create POST /api/v1/users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, result, err := h.service.CreateUser(r.Context(), &admin.CreateUserRequest{
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Permissions: req.Permissions,
	}, middleware.Actor(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.Info("POST /users - User created: username=%s", user.Username)
	handlers.RespondJSON(w, http.StatusCreated, fromUserView(*user, result.Warning))
}

// Update PUT /api/v1/users/{username}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req UserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /users/{username} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, result, err := h.service.UpdateUser(r.Context(), &admin.UpdateUserRequest{
		Username:    username,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		Permissions: req.Permissions,
	}, middleware.Actor(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.Info("PUT /users/{username} - User updated: username=%s", user.Username)
	handlers.RespondJSON(w, http.StatusOK, fromUserView(*user, result.Warning))
}

// Delete DELETE /api/v1/users/{username}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	result, err := h.service.DeleteUser(r.Context(), username, middleware.Actor(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.Info("DELETE /users/{username} - User deleted: username=%s", username)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewMutationResponse(result.Warning))
}

// SetToken PUT /api/v1/settings/api-token
func (h *Handler) SetToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings/api-token - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetAPIToken(r.Context(), req.Token, middleware.Actor(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.NewMutationResponse(result.Warning))
}

// AuditLog GET /api/v1/audit
// Query params: limit (по умолчанию 100, 0 - весь журнал)
func (h *Handler) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuditLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			h.logger.Warn("GET /audit - Invalid limit: %q", v)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = n
	}

	result, err := h.service.AuditLog(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /audit - Failed to read audit log: %v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, admin.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, admin.ErrUserNotFound):
		handlers.RespondNotFound(w, msgUserNotFound)
	case errors.Is(err, admin.ErrUserExists):
		handlers.RespondConflict(w, msgUserExists)
	case errors.Is(err, admin.ErrLastAdmin):
		handlers.RespondConflict(w, msgLastAdmin)
	default:
		h.logger.Error("%s %s - Failed: %v", r.Method, r.URL.Path, err)
		handlers.RespondInternalError(w)
		return
	}
	h.logger.Warn("%s %s - Rejected: %v", r.Method, r.URL.Path, err)
}
