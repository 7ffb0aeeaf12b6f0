// Package tracer sets up OpenTelemetry tracing.
//
// NewClient installs a tracer provider as the global default. The query
// package starts a span for every Execute through the global provider, so
// statements are traced without further wiring:
//
//	t, err := tracer.NewClient(tracer.Config{ServiceName: "catalog-sync"}, log)
//	if err != nil {
//		return err
//	}
//	defer t.Shutdown(ctx)
//
//	ctx, span := t.StartSpan(ctx, "sync")
//	defer span.End()
//	rows, err := q.Execute(ctx, "") // child span "query.execute"
//
// With EnableExport set, spans are exported over OTLP HTTP; the endpoint is
// taken from the standard OTEL_EXPORTER_OTLP_ENDPOINT variables.
//
// GetCarrier and SetCarrierOnContext move trace context across process
// boundaries as W3C traceparent headers.
package tracer
