package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dispatch outcomes recorded in the status label.
const (
	StatusSuccess         = "success"
	StatusError           = "error"
	StatusEmpty           = "empty"
	StatusValidationError = "validation_error"
	StatusDeliveryError   = "delivery_error"
)

// Registry encapsulates all metrics and provides a clean interface
// for recording metrics without global state
type Registry struct {
	registry *prometheus.Registry

	// Dispatcher metrics
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec

	// Relay metrics
	pullTotal          *prometheus.CounterVec
	pullDuration       *prometheus.HistogramVec
	envelopesDelivered *prometheus.CounterVec
	ackTotal           *prometheus.CounterVec
	relayLag           *prometheus.GaugeVec

	// Store metrics
	storeOperationTotal    *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec
	leaseOperationTotal    *prometheus.CounterVec

	systemInfo *prometheus.GaugeVec
	startTime  prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	registry := prometheus.NewRegistry()

	r := &Registry{
		registry: registry,

		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_dispatch_total",
				Help: "Total number of dispatched events",
			},
			[]string{"channel", "event", "status"},
		),

		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "broadcast_dispatch_duration_seconds",
				Help:    "Time spent handing events to the queue",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"channel", "event"},
		),

		pullTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_relay_pull_total",
				Help: "Total number of relay pulls",
			},
			[]string{"channel", "subscription", "status"}, // status: success, error, empty
		),

		pullDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "broadcast_relay_pull_duration_seconds",
				Help:    "Time spent pulling and delivering a batch",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"channel", "subscription"},
		),

		envelopesDelivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_relay_envelopes_delivered_total",
				Help: "Total number of envelopes delivered to subscribers",
			},
			[]string{"channel", "subscription"},
		),

		ackTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_relay_ack_total",
				Help: "Total number of envelope acknowledgments",
			},
			[]string{"channel", "subscription", "status"},
		),

		relayLag: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "broadcast_relay_lag_envelopes",
				Help: "Envelopes on a channel log not yet delivered to a subscription",
			},
			[]string{"channel", "subscription"},
		),

		storeOperationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_store_operation_total",
				Help: "Total number of channel log operations",
			},
			[]string{"operation", "status"}, // operation: reserve_offset, insert_envelope, commit_cursor, ...
		),

		storeOperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "broadcast_store_operation_duration_seconds",
				Help:    "Time spent on channel log operations",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),

		leaseOperationTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_lease_operation_total",
				Help: "Total number of lease operations",
			},
			[]string{"operation", "status"}, // operation: create, delete
		),

		systemInfo: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "broadcast_system_info",
				Help: "System information (value is always 1, labels contain info)",
			},
			[]string{"version", "build_time"},
		),

		startTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "broadcast_start_time_seconds",
				Help: "Unix timestamp when the application started",
			},
		),
	}

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry.MustRegister(
		r.dispatchTotal,
		r.dispatchDuration,
		r.pullTotal,
		r.pullDuration,
		r.envelopesDelivered,
		r.ackTotal,
		r.relayLag,
		r.storeOperationTotal,
		r.storeOperationDuration,
		r.leaseOperationTotal,
		r.systemInfo,
		r.startTime,
	)

	r.startTime.SetToCurrentTime()

	return r
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          r.registry,
	})
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// RecordDispatch records one dispatch call with its outcome status.
func (r *Registry) RecordDispatch(channel, event, status string, duration time.Duration) {
	r.dispatchTotal.WithLabelValues(channel, event, status).Inc()
	r.dispatchDuration.WithLabelValues(channel, event).Observe(duration.Seconds())
}

// RecordRelayPull records a relay pull operation
func (r *Registry) RecordRelayPull(channel, subscription string, delivered int, duration time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	} else if delivered == 0 {
		status = StatusEmpty
	}

	r.pullTotal.WithLabelValues(channel, subscription, status).Inc()
	r.pullDuration.WithLabelValues(channel, subscription).Observe(duration.Seconds())
	if delivered > 0 {
		r.envelopesDelivered.WithLabelValues(channel, subscription).Add(float64(delivered))
	}
}

// RecordRelayAck records a relay acknowledgment
func (r *Registry) RecordRelayAck(channel, subscription string, err error) {
	r.ackTotal.WithLabelValues(channel, subscription, status(err)).Inc()
}

// SetRelayLag records how far a subscription trails its channel log
func (r *Registry) SetRelayLag(channel, subscription string, lag uint64) {
	r.relayLag.WithLabelValues(channel, subscription).Set(float64(lag))
}

// RecordStoreOperation records a channel log operation
func (r *Registry) RecordStoreOperation(operation string, duration time.Duration, err error) {
	r.storeOperationTotal.WithLabelValues(operation, status(err)).Inc()
	r.storeOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordLeaseOperation records a lease operation
func (r *Registry) RecordLeaseOperation(operation string, err error) {
	r.leaseOperationTotal.WithLabelValues(operation, status(err)).Inc()
}

// SetSystemInfo sets system information metrics
func (r *Registry) SetSystemInfo(version, buildTime string) {
	r.systemInfo.WithLabelValues(version, buildTime).Set(1)
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
