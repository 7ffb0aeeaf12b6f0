// Package metrics exposes data access metrics to Prometheus.
//
// *Metrics implements observability.Observer. Pass it to query executors,
// schema providers and access facades (their WithObserver options) and every
// finished operation is recorded as:
//
//	operations_total{component, operation, status}
//	operation_duration_seconds{component, operation}
//	rows_total{component, operation}
//
// Each service gets its own registry, and every metric carries a constant
// "service" label. Config.Namespace prefixes metric names.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:     ":9090",
//		Namespace:   "orm",
//		ServiceName: "catalog-sync",
//	})
//	go m.Server.ListenAndServe()
//
//	q, err := query.New[Order](conn, query.WithObserver(m))
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,  // provides *Metrics, MetricsCollector and observability.Observer
//		database.FXModule, // picks up the observer for its schema provider
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: ":9090", ServiceName: "catalog-sync"}
//		}),
//	)
//
// Custom metrics registered through CreateCounter, CreateHistogram and
// CreateGauge share the registry, the namespace and the service label.
package metrics
