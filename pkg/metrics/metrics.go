// Package metrics содержит Prometheus-коллекторы сервиса.
// Все методы записи безопасны для nil *Metrics (метрики выключены).
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	serviceName string

	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database
	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBConnectionsOpen   *prometheus.GaugeVec
	DBConnectionsInUse  *prometheus.GaugeVec
	DBConnectionsIdle   *prometheus.GaugeVec
	DBConnectionsWait   *prometheus.GaugeVec
	DBMaxOpenConnection *prometheus.GaugeVec

	// Business
	BookingsCreated  *prometheus.CounterVec
	BookingsCanceled *prometheus.CounterVec
	CheckIns         *prometheus.CounterVec
	CheckOuts        *prometheus.CounterVec
	PenaltiesIssued  *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики и регистрирует их в переданном registerer
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	m := &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		HTTPRequestsInFlight: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		}, []string{"service"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"service", "operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBConnectionsOpen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of established connections",
		}, []string{"service"}),

		DBConnectionsInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBConnectionsIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBConnectionsWait: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		DBMaxOpenConnection: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_max_open",
			Help: "Maximum number of open connections",
		}, []string{"service"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of created bookings",
		}, []string{"service"}),

		BookingsCanceled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_canceled_total",
			Help: "Total number of canceled bookings",
		}, []string{"service", "penalty"}),

		CheckIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_checkins_total",
			Help: "Total number of check-ins",
		}, []string{"service", "late"}),

		CheckOuts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_checkouts_total",
			Help: "Total number of check-outs",
		}, []string{"service", "late"}),

		PenaltiesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "penalties_issued_total",
			Help: "Total number of issued penalties",
		}, []string{"service", "reason"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBConnectionsOpen,
		m.DBConnectionsInUse,
		m.DBConnectionsIdle,
		m.DBConnectionsWait,
		m.DBMaxOpenConnection,
		m.BookingsCreated,
		m.BookingsCanceled,
		m.CheckIns,
		m.CheckOuts,
		m.PenaltiesIssued,
	)

	return m
}

// ServiceName возвращает имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// BookingCreated учитывает созданное бронирование
func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.serviceName).Inc()
}

// BookingCanceled учитывает отмену бронирования
func (m *Metrics) BookingCanceled(penaltyIssued bool) {
	if m == nil {
		return
	}
	m.BookingsCanceled.WithLabelValues(m.serviceName, strconv.FormatBool(penaltyIssued)).Inc()
}

// CheckedIn учитывает регистрацию прихода
func (m *Metrics) CheckedIn(late bool) {
	if m == nil {
		return
	}
	m.CheckIns.WithLabelValues(m.serviceName, strconv.FormatBool(late)).Inc()
}

// CheckedOut учитывает регистрацию ухода
func (m *Metrics) CheckedOut(late bool) {
	if m == nil {
		return
	}
	m.CheckOuts.WithLabelValues(m.serviceName, strconv.FormatBool(late)).Inc()
}

// PenaltyIssued учитывает начисленный штраф
func (m *Metrics) PenaltyIssued(reason string) {
	if m == nil {
		return
	}
	m.PenaltiesIssued.WithLabelValues(m.serviceName, reason).Inc()
}
