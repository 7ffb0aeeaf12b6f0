package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/Aleph-Alpha/orm/v1/logger"
)

// Tracer owns the OpenTelemetry tracer provider installed as the global
// provider. Query executors pick it up through otel.Tracer, so every
// statement they run becomes a span once a Tracer exists.
type Tracer struct {
	tracer *trace.TracerProvider
	logger logger.Logger
}

// Option configures a Tracer.
type Option func(*[]trace.TracerProviderOption)

// WithSpanProcessor registers an additional span processor, e.g. a
// synchronous in-memory exporter in tests.
func WithSpanProcessor(sp trace.SpanProcessor) Option {
	return func(o *[]trace.TracerProviderOption) {
		*o = append(*o, trace.WithSpanProcessor(sp))
	}
}

// NewClient creates the tracer provider and installs it, together with the
// W3C trace context and baggage propagators, as the global default.
//
// Example:
//
//	t, err := tracer.NewClient(tracer.Config{
//	    ServiceName:  "catalog-sync",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}, log)
func NewClient(cfg Config, log logger.Logger, opts ...Option) (*Tracer, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		exporter, err := otlptrace.New(context.Background(), otlptracehttp.NewClient())
		if err != nil {
			return nil, fmt.Errorf("cannot initiate tracer exporter: %w", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}
	for _, opt := range opts {
		opt(&options)
	}

	options = append(options, trace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("deployment.environment", cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	tp := trace.NewTracerProvider(options...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	log.Info("tracer initialized", nil, map[string]interface{}{
		"service": cfg.ServiceName,
		"export":  cfg.EnableExport,
	})
	return &Tracer{tracer: tp, logger: log}, nil
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.tracer == nil {
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
