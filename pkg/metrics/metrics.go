package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnections   *prometheus.GaugeVec

	admissionsTotal        *prometheus.CounterVec
	bundleResolutionsTotal *prometheus.CounterVec
	auditEntriesTotal      *prometheus.CounterVec
	lockWaitDuration       *prometheus.HistogramVec
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		dbQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation", "status"}),

		dbConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		admissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_admissions_total",
			Help: "Booking admission decisions by outcome",
		}, []string{"service", "outcome"}),

		bundleResolutionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bundle_resolutions_total",
			Help: "Bundle resolve-or-create results",
		}, []string{"service", "result"}),

		auditEntriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_audit_entries_total",
			Help: "Booking audit log entries written",
		}, []string{"service", "kind"}),

		lockWaitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lock_wait_duration_seconds",
			Help:    "Time spent acquiring keyed locks",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5},
		}, []string{"service", "scope"}),
	}
}

// ObserveHTTPRequest фиксирует HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(m.serviceName, method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполнение SQL запроса
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation, status).Observe(duration.Seconds())
}

// SetDBConnections обновляет состояние пула соединений
func (m *Metrics) SetDBConnections(open, inUse, idle int) {
	if m == nil {
		return
	}
	m.dbConnections.WithLabelValues(m.serviceName, "open").Set(float64(open))
	m.dbConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(inUse))
	m.dbConnections.WithLabelValues(m.serviceName, "idle").Set(float64(idle))
}

// RecordAdmission фиксирует решение о допуске бронирования
// outcome: accepted, overridden, capacity_exceeded, constraint_blocked, not_available
func (m *Metrics) RecordAdmission(outcome string) {
	if m == nil {
		return
	}
	m.admissionsTotal.WithLabelValues(m.serviceName, outcome).Inc()
}

// RecordBundleResolution фиксирует результат поиска/создания пакета услуг
// result: reused, created, race_retry, race_conflict
func (m *Metrics) RecordBundleResolution(result string) {
	if m == nil {
		return
	}
	m.bundleResolutionsTotal.WithLabelValues(m.serviceName, result).Inc()
}

// RecordAuditEntry фиксирует запись в журнал изменений бронирования
func (m *Metrics) RecordAuditEntry(kind string) {
	if m == nil {
		return
	}
	m.auditEntriesTotal.WithLabelValues(m.serviceName, kind).Inc()
}

// ObserveLockWait фиксирует время ожидания блокировки
func (m *Metrics) ObserveLockWait(scope string, duration time.Duration) {
	if m == nil {
		return
	}
	m.lockWaitDuration.WithLabelValues(m.serviceName, scope).Observe(duration.Seconds())
}
