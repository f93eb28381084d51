// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups HTTP and domain collectors
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingsCreated     *prometheus.CounterVec
	ProvisionalsExpired prometheus.Counter
	PersistFailures     *prometheus.CounterVec
	SyncOperations      *prometheus.CounterVec
	TextGenFallbacks    prometheus.Counter
}

// New registers collectors on the default registerer
func New(serviceName string) *Metrics {
	m, err := NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
	if err != nil {
		panic(err)
	}
	return m
}

// NewWithRegistry registers collectors on reg. Collectors that are already
// registered are reused.
func NewWithRegistry(serviceName string, reg prometheus.Registerer) (*Metrics, error) {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings created by kind and period",
			ConstLabels: constLabels,
		}, []string{"kind", "period"}),
		ProvisionalsExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "provisional_bookings_expired_total",
			Help:        "Provisional bookings removed after expiration",
			ConstLabels: constLabels,
		}),
		PersistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "snapshot_persist_failures_total",
			Help:        "Failed snapshot writes by backend",
			ConstLabels: constLabels,
		}, []string{"backend"}),
		SyncOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "remote_sync_operations_total",
			Help:        "Remote sync operations by direction and result",
			ConstLabels: constLabels,
		}, []string{"direction", "result"}),
		TextGenFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "textgen_fallbacks_total",
			Help:        "Text generation calls answered with the fallback message",
			ConstLabels: constLabels,
		}),
	}

	var err error
	m.HTTPRequestsTotal, err = register(reg, m.HTTPRequestsTotal, err)
	m.HTTPRequestDuration, err = register(reg, m.HTTPRequestDuration, err)
	m.BookingsCreated, err = register(reg, m.BookingsCreated, err)
	m.ProvisionalsExpired, err = register(reg, m.ProvisionalsExpired, err)
	m.PersistFailures, err = register(reg, m.PersistFailures, err)
	m.SyncOperations, err = register(reg, m.SyncOperations, err)
	m.TextGenFallbacks, err = register(reg, m.TextGenFallbacks, err)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// register stops at the first error and reuses already registered collectors
func register[T prometheus.Collector](reg prometheus.Registerer, c T, prev error) (T, error) {
	if prev != nil {
		return c, prev
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// Методы ниже безопасны для nil: при выключенных метриках передаётся nil *Metrics

// BookingCreated учитывает созданное бронирование
func (m *Metrics) BookingCreated(kind, period string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(kind, period).Inc()
}

// ProvisionalExpired учитывает удалённые предварительные бронирования
func (m *Metrics) ProvisionalExpired(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ProvisionalsExpired.Add(float64(n))
}

// SyncOperation учитывает операцию синхронизации
func (m *Metrics) SyncOperation(direction, result string) {
	if m == nil {
		return
	}
	m.SyncOperations.WithLabelValues(direction, result).Inc()
}
