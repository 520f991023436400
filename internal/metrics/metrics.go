package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Audit subsystem
	AuditEventsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "audit_events_recorded_total",
			Help: "Audit events written, by verb",
		},
		[]string{"verb"},
	)
	AuditWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Audit event inserts swallowed after a store failure",
		},
	)
	AuditEventsPurged = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_events_purged_total",
			Help: "Audit events removed by the retention purge",
		},
	)
	AuditAccessDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_access_events_dropped_total",
			Help: "Access events dropped because the recorder queue was full",
		},
	)

	// Worker queue
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(AuditEventsRecorded)
	prometheus.MustRegister(AuditWriteFailures)
	prometheus.MustRegister(AuditEventsPurged)
	prometheus.MustRegister(AuditAccessDropped)
	prometheus.MustRegister(WorkerQueueDepth)
}
