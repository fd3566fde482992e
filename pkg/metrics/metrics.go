package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics содержит все метрики сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	// Бизнес-метрики бронирований
	BookingsCreated        prometheus.Counter
	BookingConflicts       prometheus.Counter
	PaymentFailures        *prometheus.CounterVec
	StatusTransitions      *prometheus.CounterVec
	ReconcilerRuns         *prometheus.CounterVec
	TxSerializationRetries prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики в указанном реестре (удобно для тестов)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Duration of HTTP requests",
			ConstLabels: constLabels,
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Duration of database queries",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings",
			ConstLabels: constLabels,
		}),
		BookingConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Total number of booking attempts rejected because of an overlapping slot",
			ConstLabels: constLabels,
		}),
		PaymentFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_gateway_failures_total",
			Help:        "Total number of failed payment gateway calls",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "order_status_transitions_total",
			Help:        "Order status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to", "source"}),
		ReconcilerRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_reconciler_runs_total",
			Help:        "Background payment reconciler iterations",
			ConstLabels: constLabels,
		}, []string{"result"}),
		TxSerializationRetries: factory.NewCounter(prometheus.CounterOpts{
			Name:        "tx_serialization_retries_total",
			Help:        "Serializable transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}),
	}
}

// Методы ниже безопасны для nil *Metrics, когда метрики выключены в конфиге

// RecordBookingCreated учитывает созданное бронирование
func (m *Metrics) RecordBookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

// RecordBookingConflict учитывает отказ из-за пересечения
func (m *Metrics) RecordBookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.Inc()
}

// RecordPaymentFailure учитывает ошибку вызова платежного шлюза
func (m *Metrics) RecordPaymentFailure(operation string) {
	if m == nil {
		return
	}
	m.PaymentFailures.WithLabelValues(operation).Inc()
}

// RecordStatusTransition учитывает смену статуса заказа
func (m *Metrics) RecordStatusTransition(from, to, source string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(from, to, source).Inc()
}

// RecordReconcilerRun учитывает итерацию фоновой сверки
func (m *Metrics) RecordReconcilerRun(result string) {
	if m == nil {
		return
	}
	m.ReconcilerRuns.WithLabelValues(result).Inc()
}

// RecordTxRetry учитывает повтор сериализуемой транзакции
func (m *Metrics) RecordTxRetry() {
	if m == nil {
		return
	}
	m.TxSerializationRetries.Inc()
}
