// Package api собирает HTTP маршруты сервиса.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	analyticsHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/analytics"
	catalogHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/catalog"
	confirmBookingHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/create_booking"
	getAvailableTechniciansHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/get_available_technicians"
	getBookingHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/get_booking"
	getConfirmationMessageHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/get_confirmation_message"
	getOpenPeriodsHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/get_open_periods"
	listBookingsHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/list_bookings"
	removeBookingHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/remove_booking"
	rescheduleBookingHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/reschedule_booking"
	syncHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/sync"
	techniciansHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/technicians"
	updateExecutionHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/update_execution"
	usersHandler "github.com/m04kA/SMC-FieldScheduler/internal/api/handlers/users"
	"github.com/m04kA/SMC-FieldScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
	adminService "github.com/m04kA/SMC-FieldScheduler/internal/service/admin"
	analyticsService "github.com/m04kA/SMC-FieldScheduler/internal/service/analytics"
	bookingsService "github.com/m04kA/SMC-FieldScheduler/internal/service/bookings"
	remoteService "github.com/m04kA/SMC-FieldScheduler/internal/service/remote"
	createBookingUC "github.com/m04kA/SMC-FieldScheduler/internal/usecase/create_booking"
	getAvailableTechniciansUC "github.com/m04kA/SMC-FieldScheduler/internal/usecase/get_available_technicians"
	getOpenPeriodsUC "github.com/m04kA/SMC-FieldScheduler/internal/usecase/get_open_periods"
	"github.com/m04kA/SMC-FieldScheduler/pkg/logger"
	"github.com/m04kA/SMC-FieldScheduler/pkg/metrics"
)

// Options настройки маршрутизации
type Options struct {
	AuthEnabled bool
	Realm       string
	// NoAuthActor имя в журнале аудита при выключенной аутентификации
	NoAuthActor string
	MetricsPath string // пусто - /metrics не публикуется
}

// Deps use cases и сервисы, которые обслуживают маршруты
type Deps struct {
	AvailableTechnicians *getAvailableTechniciansUC.UseCase
	OpenPeriods          *getOpenPeriodsUC.UseCase
	CreateBooking        *createBookingUC.UseCase
	Bookings             *bookingsService.Service
	Admin                *adminService.Service
	Analytics            *analyticsService.Service
	Sync                 *remoteService.Service
	Metrics              *metrics.Metrics
	Logger               *logger.Logger
}

// NewRouter регистрирует все маршруты /api/v1
func NewRouter(deps Deps, opts Options) *mux.Router {
	log := deps.Logger

	// Инициализируем handlers
	getAvailableTechnicians := getAvailableTechniciansHandler.NewHandler(deps.AvailableTechnicians, log)
	getOpenPeriods := getOpenPeriodsHandler.NewHandler(deps.OpenPeriods, log)
	createBooking := createBookingHandler.NewHandler(deps.CreateBooking, log)
	getBooking := getBookingHandler.NewHandler(deps.Bookings, log)
	listBookings := listBookingsHandler.NewHandler(deps.Bookings, log)
	confirmBooking := confirmBookingHandler.NewHandler(deps.Bookings, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(deps.Bookings, log)
	updateExecution := updateExecutionHandler.NewHandler(deps.Bookings, log)
	removeBooking := removeBookingHandler.NewHandler(deps.Bookings, log)
	getConfirmationMessage := getConfirmationMessageHandler.NewHandler(deps.Bookings, log)
	technicians := techniciansHandler.NewHandler(deps.Admin, log)
	catalog := catalogHandler.NewHandler(deps.Admin, log)
	users := usersHandler.NewHandler(deps.Admin, log)
	analytics := analyticsHandler.NewHandler(deps.Analytics, log)
	sync := syncHandler.NewHandler(deps.Sync, log)

	r := mux.NewRouter()
	r.Use(middleware.MetricsMiddleware(deps.Metrics))

	// Metrics endpoint (публичный, без аутентификации)
	if opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Техники со свободными слотами на город, дату и период
	api.HandleFunc("/availability/technicians", getAvailableTechnicians.Handle).Methods(http.MethodGet)

	// Периоды дня, на которые ещё можно записаться
	api.HandleFunc("/availability/periods", getOpenPeriods.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Basic auth, права проверяются по группам)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	if opts.AuthEnabled {
		protected.Use(middleware.BasicAuth(deps.Admin, opts.Realm, log))
	} else {
		protected.Use(middleware.NoAuth(opts.NoAuthActor))
	}

	// --- Бронирования ---
	bookings := protected.PathPrefix("/bookings").Subrouter()
	bookings.Use(middleware.RequirePermission(domain.PermManageBookings))

	bookings.HandleFunc("", listBookings.Handle).Methods(http.MethodGet)
	bookings.HandleFunc("", createBooking.Handle).Methods(http.MethodPost)
	bookings.HandleFunc("/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	bookings.HandleFunc("/{bookingId}", removeBooking.Handle).Methods(http.MethodDelete)
	bookings.HandleFunc("/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	bookings.HandleFunc("/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)
	bookings.HandleFunc("/{bookingId}/execution", updateExecution.Handle).Methods(http.MethodPatch)
	bookings.HandleFunc("/{bookingId}/message", getConfirmationMessage.Handle).Methods(http.MethodGet)

	// --- Техники и справочники ---
	capacity := protected.PathPrefix("").Subrouter()
	capacity.Use(middleware.RequirePermission(domain.PermManageCapacity))

	capacity.HandleFunc("/technicians", technicians.List).Methods(http.MethodGet)
	capacity.HandleFunc("/technicians", technicians.Create).Methods(http.MethodPost)
	capacity.HandleFunc("/technicians/{technicianId}", technicians.Update).Methods(http.MethodPut)
	capacity.HandleFunc("/technicians/{technicianId}", technicians.Delete).Methods(http.MethodDelete)

	capacity.HandleFunc("/cities", catalog.ListCities).Methods(http.MethodGet)
	capacity.HandleFunc("/cities", catalog.AddCity).Methods(http.MethodPost)
	capacity.HandleFunc("/cities/{value}", catalog.RemoveCity).Methods(http.MethodDelete)
	capacity.HandleFunc("/activities", catalog.ListActivities).Methods(http.MethodGet)
	capacity.HandleFunc("/activities", catalog.AddActivity).Methods(http.MethodPost)
	capacity.HandleFunc("/activities/{value}", catalog.RemoveActivity).Methods(http.MethodDelete)
	capacity.HandleFunc("/holidays", catalog.ListHolidays).Methods(http.MethodGet)
	capacity.HandleFunc("/holidays", catalog.AddHoliday).Methods(http.MethodPost)
	capacity.HandleFunc("/holidays/{value}", catalog.RemoveHoliday).Methods(http.MethodDelete)

	// --- Аналитика ---
	reports := protected.PathPrefix("/analytics").Subrouter()
	reports.Use(middleware.RequirePermission(domain.PermViewAnalytics))

	reports.HandleFunc("/report", analytics.Handle).Methods(http.MethodGet)

	// --- Пользователи, настройки и синхронизация ---
	admin := protected.PathPrefix("").Subrouter()
	admin.Use(middleware.RequirePermission(domain.PermManageUsers))

	admin.HandleFunc("/users", users.List).Methods(http.MethodGet)
	admin.HandleFunc("/users", users.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users/{username}", users.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{username}", users.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/settings/api-token", users.SetToken).Methods(http.MethodPut)
	admin.HandleFunc("/audit", users.AuditLog).Methods(http.MethodGet)
	admin.HandleFunc("/sync/push", sync.Push).Methods(http.MethodPost)
	admin.HandleFunc("/sync/pull", sync.Pull).Methods(http.MethodPost)

	return r
}
