package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	BookingRejections *prometheus.CounterVec
	ExternalCalls     *prometheus.CounterVec
	SlotsResolved     prometheus.Histogram
}

// New создает метрики и регистрирует их в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		BookingRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_rejections_total",
			Help:        "Booking submissions rejected before or by the gateway, by reason",
			ConstLabels: constLabels,
		}, []string{"operation", "reason"}),
		ExternalCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "external_calls_total",
			Help:        "Calls to the remote trainer API by operation and outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		SlotsResolved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "available_slots_resolved",
			Help:        "Number of bookable slots returned per availability query",
			ConstLabels: constLabels,
			Buckets:     []float64{0, 1, 2, 4, 8, 12, 16, 24, 32, 48},
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingRejections,
		m.ExternalCalls,
		m.SlotsResolved,
	)

	return m
}

// ObserveRejection учитывает отклонённое бронирование. Безопасен для nil.
func (m *Metrics) ObserveRejection(operation, reason string) {
	if m == nil {
		return
	}
	m.BookingRejections.WithLabelValues(operation, reason).Inc()
}

// ObserveExternalCall учитывает вызов внешнего API. Безопасен для nil.
func (m *Metrics) ObserveExternalCall(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ExternalCalls.WithLabelValues(operation, outcome).Inc()
}

// ObserveSlots учитывает количество найденных слотов. Безопасен для nil.
func (m *Metrics) ObserveSlots(count int) {
	if m == nil {
		return
	}
	m.SlotsResolved.Observe(float64(count))
}
