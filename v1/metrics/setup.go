package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry, the HTTP server exposing it and the
// operation metrics recorded through ObserveOperation.
type Metrics struct {
	// Server serves the /metrics endpoint.
	Server *http.Server

	// Registry is the service's own registry, isolated from the global one.
	Registry *prometheus.Registry

	namespace  string
	registerer prometheus.Registerer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	rowsTotal         *prometheus.CounterVec
}

// NewMetrics creates a dedicated registry, registers the operation metrics
// (and the default collectors when enabled) under a constant "service" label,
// and builds the HTTP server for it.
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{
//	    Address:     ":9090",
//	    Namespace:   "orm",
//	    ServiceName: "catalog-sync",
//	})
//	go m.Server.ListenAndServe()
func NewMetrics(cfg Config) *Metrics {
	registry := prometheus.NewRegistry()

	// service="<cfg.ServiceName>" on every metric
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		namespace:  cfg.Namespace,
		registerer: wrappedRegistry,
	}

	m.operationsTotal = createCounterVec(cfg.Namespace, "operations_total",
		"Total number of data access operations", []string{"component", "operation", "status"})
	m.operationDuration = createHistogramVec(cfg.Namespace, "operation_duration_seconds",
		"Duration of data access operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.rowsTotal = createCounterVec(cfg.Namespace, "rows_total",
		"Rows returned or affected by data access operations", []string{"component", "operation"})

	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.rowsTotal,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	m.Server = &http.Server{
		Addr:    address,
		Handler: mux,
	}
	return m
}
